package web

import (
	"net/http"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/logger"
	"storefront/internal/order"
	"storefront/internal/user"
	"storefront/internal/validation"

	"go.uber.org/zap"
)

const checkoutKey = "checkout"

// CheckoutForm is the delivery and payment step, kept in the session until
// the order is confirmed.
type CheckoutForm struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	DeliveryMethod string `json:"deliveryMethod"`
	PaymentMethod  string `json:"paymentMethod"`
	CardNumber     string `json:"cardNumber,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

func checkoutFormFrom(r *http.Request) CheckoutForm {
	f := CheckoutForm{
		FullName:       r.PostFormValue("fullName"),
		Email:          r.PostFormValue("email"),
		Phone:          r.PostFormValue("phone"),
		Address:        r.PostFormValue("address"),
		City:           r.PostFormValue("city"),
		PostalCode:     r.PostFormValue("postalCode"),
		DeliveryMethod: r.PostFormValue("deliveryMethod"),
		PaymentMethod:  r.PostFormValue("paymentMethod"),
		CardNumber:     r.PostFormValue("cardNumber"),
		Notes:          r.PostFormValue("notes"),
	}
	if order.UsesCard(strings.TrimSpace(f.PaymentMethod)) {
		f.CardNumber = strings.Join(strings.Fields(f.CardNumber), "")
	} else {
		f.CardNumber = ""
	}
	return f
}

func (f CheckoutForm) orderInput(c *cart.Cart, u *user.SessionUser) order.CreateOrderInput {
	in := order.CreateOrderInput{
		FullName:       f.FullName,
		Email:          f.Email,
		Phone:          f.Phone,
		Address:        f.Address,
		City:           f.City,
		PostalCode:     f.PostalCode,
		DeliveryMethod: f.DeliveryMethod,
		PaymentMethod:  f.PaymentMethod,
		CardNumber:     f.CardNumber,
		Notes:          f.Notes,
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
	if u != nil {
		in.UserID = &u.ID
		in.Username = u.Username
	}
	return in
}

// MaskedCard shows only the last four digits.
func (f CheckoutForm) MaskedCard() string {
	if !order.UsesCard(f.PaymentMethod) || len(f.CardNumber) < 4 {
		return ""
	}
	last := f.CardNumber[len(f.CardNumber)-4:]
	o := order.Order{PaymentMethod: f.PaymentMethod, CardLastFour: &last}
	return o.MaskedCard()
}

type checkoutView struct {
	Form            CheckoutForm
	Errors          map[string]string
	Cart            cartView
	PaymentMethods  []string
	DeliveryMethods []string
	CashMethod      string
}

func (h *Handler) newCheckoutView(f CheckoutForm, errs map[string]string, c *cart.Cart) checkoutView {
	return checkoutView{
		Form:            f,
		Errors:          errs,
		Cart:            newCartView(c),
		PaymentMethods:  order.PaymentMethods,
		DeliveryMethods: order.DeliveryMethods,
		CashMethod:      order.PaymentCashOnDelivery,
	}
}

func (h *Handler) checkoutPage(w http.ResponseWriter, r *http.Request) {
	c := h.loadCart(r)
	if c.IsEmpty() {
		h.flashRedirect(w, r, "Your cart is empty.", "/cart")
		return
	}

	var f CheckoutForm
	if !h.session(r).GetJSON(checkoutKey, &f) {
		f = h.prefill(r)
	}
	// The card number is never echoed back into the page.
	f.CardNumber = ""
	h.render(w, r, http.StatusOK, "checkout", "Checkout", h.newCheckoutView(f, nil, c))
}

// prefill seeds a new form from the signed-in user's profile.
func (h *Handler) prefill(r *http.Request) CheckoutForm {
	f := CheckoutForm{
		DeliveryMethod: order.DeliveryCourier,
		PaymentMethod:  order.PaymentCreditCard,
	}

	su := h.session(r).User()
	if su == nil {
		return f
	}
	u, err := h.users.GetByID(r.Context(), su.ID)
	if err != nil {
		logger.FromCtx(r.Context()).Warn("checkout prefill skipped", zap.Int64("user_id", su.ID), zap.Error(err))
		return f
	}

	f.Email = u.Email
	f.Phone = deref(u.Phone)
	f.Address = deref(u.Address)
	f.City = deref(u.City)
	f.PostalCode = deref(u.PostalCode)
	return f
}

func (h *Handler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	c := h.loadCart(r)
	if c.IsEmpty() {
		h.flashRedirect(w, r, "Your cart is empty.", "/cart")
		return
	}

	sess := h.session(r)
	f := checkoutFormFrom(r)
	if err := order.Validate(f.orderInput(c, sess.User())); err != nil {
		ve, ok := validation.As(err)
		if !ok {
			h.serverError(w, r, err)
			return
		}
		f.CardNumber = ""
		h.render(w, r, http.StatusBadRequest, "checkout", "Checkout", h.newCheckoutView(f, ve.Fields, c))
		return
	}

	if err := sess.SetJSON(checkoutKey, f); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.redirect(w, r, "/checkout/confirm")
}

type confirmView struct {
	Form       CheckoutForm
	MaskedCard string
	Cart       cartView
}

func (h *Handler) confirmPage(w http.ResponseWriter, r *http.Request) {
	f, c, ok := h.pendingCheckout(w, r)
	if !ok {
		return
	}
	view := confirmView{Form: f, MaskedCard: f.MaskedCard(), Cart: newCartView(c)}
	view.Form.CardNumber = ""
	h.render(w, r, http.StatusOK, "confirm", "Confirm order", view)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	f, c, ok := h.pendingCheckout(w, r)
	if !ok {
		return
	}

	sess := h.session(r)
	o, err := h.orders.CreateOrder(r.Context(), f.orderInput(c, sess.User()))
	if _, invalid := validation.As(err); invalid {
		h.flashRedirect(w, r, "Please review your checkout details.", "/checkout")
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	c.Clear()
	if !h.storeCart(w, r, c) {
		return
	}
	sess.Delete(checkoutKey)
	h.flashRedirect(w, r, "Thank you! Your order has been placed.", "/order/"+o.ID)
}

// pendingCheckout guards the confirm step: it needs a non-empty cart and a
// stored form.
func (h *Handler) pendingCheckout(w http.ResponseWriter, r *http.Request) (CheckoutForm, *cart.Cart, bool) {
	var f CheckoutForm
	c := h.loadCart(r)
	if c.IsEmpty() {
		h.flashRedirect(w, r, "Your cart is empty.", "/cart")
		return f, nil, false
	}
	if !h.session(r).GetJSON(checkoutKey, &f) {
		h.redirect(w, r, "/checkout")
		return f, nil, false
	}
	return f, c, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
