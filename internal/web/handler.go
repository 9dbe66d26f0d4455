// Package web serves the server-rendered storefront pages.
package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/logger"
	"storefront/internal/order"
	"storefront/internal/product"
	"storefront/internal/session"
	"storefront/internal/user"
	"storefront/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type sessionCtxKey struct{}

type Handler struct {
	products product.Service
	orders   order.Service
	users    user.Service
	sessions *session.Manager
	pages    map[string]*template.Template
}

func NewHandler(products product.Service, orders order.Service, users user.Service, sessions *session.Manager) (*Handler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Handler{
		products: products,
		orders:   orders,
		users:    users,
		sessions: sessions,
		pages:    pages,
	}, nil
}

// Routes mounts the pages on r. Mount it in a group so the session
// middleware stays off the API.
func (h *Handler) Routes(r chi.Router) {
	r.Use(h.withSession)

	r.Get("/", h.home)
	r.Get("/products", h.productList)

	r.Get("/cart", h.viewCart)
	r.Post("/cart/add", h.addToCart)
	r.Post("/cart/update", h.updateCart)
	r.Post("/cart/remove", h.removeFromCart)

	r.Get("/checkout", h.checkoutPage)
	r.Post("/checkout", h.submitCheckout)
	r.Get("/checkout/confirm", h.confirmPage)
	r.Post("/checkout/confirm", h.placeOrder)

	r.Get("/order/{id}", h.orderDetail)
	r.Get("/orders/my", h.myOrders)

	r.Get("/login", h.loginPage)
	r.Post("/login", h.login)
	r.Get("/register", h.registerPage)
	r.Post("/register", h.register)
	r.Get("/logout", h.logout)
	r.Post("/logout", h.logout)
}

// withSession loads the cookie session once per request and exposes the
// signed-in user through the shared user context keys.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.sessions.Load(r)
		if err != nil {
			logger.FromCtx(r.Context()).Warn("session cookie rejected, starting a new one", zap.Error(err))
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
		if u := sess.User(); u != nil {
			ctx = utils.SetUserContext(ctx, u.ID, u.Username, string(u.Role))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) session(r *http.Request) *session.Session {
	if sess, ok := r.Context().Value(sessionCtxKey{}).(*session.Session); ok {
		return sess
	}
	sess, _ := h.sessions.Load(r)
	return sess
}

func (h *Handler) loadCart(r *http.Request) *cart.Cart {
	c, err := cart.LoadFromSession(h.session(r))
	if errors.Is(err, cart.ErrCorruptSession) {
		logger.FromCtx(r.Context()).Warn("discarding corrupt cart payload", zap.Error(err))
	}
	return c
}

// redirect saves the session and answers 303 See Other.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, to string) {
	if err := h.session(r).Save(w); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (h *Handler) flashRedirect(w http.ResponseWriter, r *http.Request, msg, to string) {
	h.session(r).AddFlash(msg)
	h.redirect(w, r, to)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromCtx(r.Context()).Error("page failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// localPath accepts only same-site relative paths.
func localPath(p, fallback string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}
