// Package api serves the JSON surface under /api.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/cart"
	"storefront/internal/httpx"
	"storefront/internal/logger"
	"storefront/internal/middleware"
	"storefront/internal/order"
	"storefront/internal/product"
	"storefront/internal/session"
	"storefront/internal/user"
	"storefront/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	products product.Service
	orders   order.Service
	users    user.Service
	sessions *session.Manager
}

func NewHandler(products product.Service, orders order.Service, users user.Service, sessions *session.Manager) *Handler {
	return &Handler{
		products: products,
		orders:   orders,
		users:    users,
		sessions: sessions,
	}
}

// Routes mounts the API on r. Token auth is applied to every route.
func (h *Handler) Routes(r chi.Router) {
	r.Use(middleware.Auth(h.users))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.replaceProduct)
		r.Patch("/{id}", h.patchProduct)
		r.Delete("/{id}", h.deleteProduct)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.With(middleware.RequireUser).Get("/my", h.myOrders)
		r.Get("/{id}", h.getOrder)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.getCart)
		r.Post("/items", h.addCartItem)
		r.Put("/items/{id}", h.updateCartItem)
		r.Delete("/items/{id}", h.removeCartItem)
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Get("/options", h.checkoutOptions)
		r.Post("/", h.checkout)
	})

	r.Post("/auth/token", h.issueToken)
}

// writeError maps domain errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := validation.As(err); ok {
		httpx.Validation(w, ve)
		return
	}

	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, cart.ErrCartItemNotFound):
		httpx.NotFound(w, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		httpx.Unauthorized(w, err.Error())
	case errors.Is(err, order.ErrAccessDenied):
		httpx.Forbidden(w, err.Error())
	default:
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		httpx.InternalError(w)
	}
}

func writeDecodeError(w http.ResponseWriter, err error) {
	httpx.BadRequest(w, err.Error())
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, validation.New("id", "must be a positive integer")
	}
	return id, nil
}
