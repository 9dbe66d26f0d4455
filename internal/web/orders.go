package web

import (
	"errors"
	"net/http"

	"storefront/internal/order"
	"storefront/internal/utils"

	"github.com/go-chi/chi/v5"
)

type orderView struct {
	Order      *order.Order
	MaskedCard string
}

func (h *Handler) orderDetail(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, order.ErrOrderNotFound) {
		h.flashRedirect(w, r, "Order not found.", "/products")
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	userID, authenticated := utils.GetUserIDFromContext(r.Context())
	if !o.VisibleTo(userID, authenticated) {
		h.render(w, r, http.StatusForbidden, "error", "Access denied", "You are not allowed to view this order.")
		return
	}

	h.render(w, r, http.StatusOK, "order", "Order "+o.ID, orderView{Order: o, MaskedCard: o.MaskedCard()})
}

func (h *Handler) myOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.flashRedirect(w, r, "Please sign in to see your orders.", "/login")
		return
	}

	orders, err := h.orders.ListUserOrders(r.Context(), userID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "orders", "My orders", orders)
}
