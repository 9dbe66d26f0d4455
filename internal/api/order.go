package api

import (
	"net/http"

	"storefront/internal/httpx"
	"storefront/internal/order"
	"storefront/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in order.CreateOrderInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeDecodeError(w, err)
		return
	}

	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		in.UserID = &id
		in.Username = utils.GetUsernameFromContext(r.Context())
	}

	o, err := h.orders.CreateOrder(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.Created(w, "/api/orders/"+o.ID, order.ToResponse(o))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	userID, authenticated := utils.GetUserIDFromContext(r.Context())
	if !o.VisibleTo(userID, authenticated) {
		writeError(w, r, order.ErrAccessDenied)
		return
	}
	httpx.OK(w, order.ToResponse(o))
}

func (h *Handler) myOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.orders.ListUserOrders(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.OK(w, order.ToResponses(orders))
}
