package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/product"

	"github.com/shopspring/decimal"
)

type cartView struct {
	Items         []*cart.CartItem
	TotalQuantity int
	TotalPrice    decimal.Decimal
}

func newCartView(c *cart.Cart) cartView {
	return cartView{
		Items:         c.Items(),
		TotalQuantity: c.TotalQuantity(),
		TotalPrice:    c.TotalPrice(),
	}
}

func (h *Handler) viewCart(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "cart", "Cart", newCartView(h.loadCart(r)))
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	back := localPath(r.PostFormValue("redirect"), "/products")

	id, ok := formID(r, "productId")
	if !ok {
		h.flashRedirect(w, r, "Unknown product.", back)
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if errors.Is(err, product.ErrProductNotFound) {
		h.flashRedirect(w, r, "Unknown product.", back)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	c := h.loadCart(r)
	c.Add(p.ID, p.Name, p.Price)
	if !h.storeCart(w, r, c) {
		return
	}
	h.flashRedirect(w, r, p.Name+" added to cart.", back)
}

func (h *Handler) updateCart(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(r, "productId")
	c := h.loadCart(r)
	if !ok || !c.Contains(id) {
		h.flashRedirect(w, r, "Product not found in cart.", "/cart")
		return
	}

	qty, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("quantity")))
	if err != nil {
		h.flashRedirect(w, r, "Quantity must be a whole number.", "/cart")
		return
	}
	if qty > cart.MaxQuantity {
		h.flashRedirect(w, r, "Quantity must be at most "+strconv.Itoa(cart.MaxQuantity)+".", "/cart")
		return
	}

	c.UpdateQuantity(id, qty)
	if !h.storeCart(w, r, c) {
		return
	}
	msg := "Quantity updated."
	if !c.Contains(id) {
		msg = "Product removed from cart."
	}
	h.flashRedirect(w, r, msg, "/cart")
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	id, ok := formID(r, "productId")
	c := h.loadCart(r)
	if !ok || !c.Contains(id) {
		h.flashRedirect(w, r, "Product not found in cart.", "/cart")
		return
	}

	c.Remove(id)
	if !h.storeCart(w, r, c) {
		return
	}
	h.flashRedirect(w, r, "Product removed from cart.", "/cart")
}

// storeCart writes c into the session values; the caller saves the cookie.
func (h *Handler) storeCart(w http.ResponseWriter, r *http.Request, c *cart.Cart) bool {
	if err := cart.SaveToSession(h.session(r), c); err != nil {
		h.serverError(w, r, err)
		return false
	}
	return true
}

func formID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue(name)), 10, 64)
	return id, err == nil && id > 0
}
