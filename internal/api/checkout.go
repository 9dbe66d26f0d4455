package api

import (
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/httpx"
	"storefront/internal/order"
	"storefront/internal/utils"
)

type CheckoutOptionsResponse struct {
	PaymentMethods    []string `json:"paymentMethods"`
	DeliveryMethods   []string `json:"deliveryMethods"`
	CashPaymentMethod string   `json:"cashPaymentMethod"`
}

// checkoutRequest is the order form without line items; those come from the
// session cart.
type checkoutRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	DeliveryMethod string `json:"deliveryMethod"`
	PaymentMethod  string `json:"paymentMethod"`
	CardNumber     string `json:"cardNumber"`
	Notes          string `json:"notes"`
}

func (h *Handler) checkoutOptions(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, CheckoutOptionsResponse{
		PaymentMethods:    order.PaymentMethods,
		DeliveryMethods:   order.DeliveryMethods,
		CashPaymentMethod: order.PaymentCashOnDelivery,
	})
}

// checkout turns the session cart into an order and empties the cart.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	sess, c := h.loadCart(r)
	if c.IsEmpty() {
		httpx.BadRequest(w, cart.ErrCartEmpty.Error())
		return
	}

	in := order.CreateOrderInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		City:           req.City,
		PostalCode:     req.PostalCode,
		DeliveryMethod: req.DeliveryMethod,
		PaymentMethod:  req.PaymentMethod,
		CardNumber:     req.CardNumber,
		Notes:          req.Notes,
	}
	for _, it := range c.Items() {
		id := it.ProductID
		in.Items = append(in.Items, order.LineItemInput{
			ProductID:   &id,
			ProductName: it.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
		})
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

	c.Clear()
	if !h.saveCart(w, r, sess, c) {
		return
	}
	httpx.Created(w, "/api/orders/"+o.ID, order.ToResponse(o))
}
