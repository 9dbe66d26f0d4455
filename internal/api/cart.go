package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/cart"
	"storefront/internal/httpx"
	"storefront/internal/logger"
	"storefront/internal/session"
	"storefront/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type addCartItemRequest struct {
	ProductID *int64 `json:"productId"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

type CartActionResponse struct {
	ProductID     int64       `json:"productId"`
	Quantity      *int        `json:"quantity"`
	Subtotal      json.Number `json:"subtotal"`
	TotalQuantity int         `json:"totalQuantity"`
	TotalPrice    json.Number `json:"totalPrice"`
	Removed       bool        `json:"removed"`
	Message       string      `json:"message"`
}

type CartLineResponse struct {
	ProductID int64       `json:"productId"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Quantity  int         `json:"quantity"`
	Subtotal  json.Number `json:"subtotal"`
}

type CartSummaryResponse struct {
	Items         []CartLineResponse `json:"items"`
	TotalQuantity int                `json:"totalQuantity"`
	TotalPrice    json.Number        `json:"totalPrice"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	_, c := h.loadCart(r)

	lines := make([]CartLineResponse, 0, c.Len())
	for _, it := range c.Items() {
		lines = append(lines, CartLineResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     money(it.Price),
			Quantity:  it.Quantity,
			Subtotal:  money(it.Subtotal()),
		})
	}
	httpx.OK(w, CartSummaryResponse{
		Items:         lines,
		TotalQuantity: c.TotalQuantity(),
		TotalPrice:    money(c.TotalPrice()),
	})
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if req.ProductID == nil {
		writeError(w, r, validation.New("productId", "is required"))
		return
	}

	p, err := h.products.GetByID(r.Context(), *req.ProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sess, c := h.loadCart(r)
	item := c.Add(p.ID, p.Name, p.Price)
	if !h.saveCart(w, r, sess, c) {
		return
	}
	httpx.OK(w, cartAction(c, p.ID, item, "Product added to cart"))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateCartItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if req.Quantity == nil {
		writeError(w, r, validation.New("quantity", "is required"))
		return
	}
	if *req.Quantity > cart.MaxQuantity {
		writeError(w, r, validation.New("quantity", "must be less than or equal to "+strconv.Itoa(cart.MaxQuantity)))
		return
	}

	sess, c := h.loadCart(r)
	if !c.Contains(id) {
		writeError(w, r, cart.ErrCartItemNotFound)
		return
	}

	c.UpdateQuantity(id, *req.Quantity)
	if !h.saveCart(w, r, sess, c) {
		return
	}

	item, _ := c.Get(id)
	msg := "Quantity updated"
	if item == nil {
		msg = "Product removed from cart"
	}
	httpx.OK(w, cartAction(c, id, item, msg))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sess, c := h.loadCart(r)
	if !c.Contains(id) {
		writeError(w, r, cart.ErrCartItemNotFound)
		return
	}

	c.Remove(id)
	if !h.saveCart(w, r, sess, c) {
		return
	}
	httpx.OK(w, cartAction(c, id, nil, "Product removed from cart"))
}

// loadCart never fails: session or payload problems degrade to an empty cart.
func (h *Handler) loadCart(r *http.Request) (*session.Session, *cart.Cart) {
	log := logger.FromCtx(r.Context())

	sess, err := h.sessions.Load(r)
	if err != nil {
		log.Warn("session cookie rejected, starting a new one", zap.Error(err))
	}

	c, err := cart.LoadFromSession(sess)
	if errors.Is(err, cart.ErrCorruptSession) {
		log.Warn("discarding corrupt cart payload", zap.Error(err))
	}
	return sess, c
}

func (h *Handler) saveCart(w http.ResponseWriter, r *http.Request, sess *session.Session, c *cart.Cart) bool {
	if err := cart.SaveToSession(sess, c); err != nil {
		writeError(w, r, err)
		return false
	}
	if err := sess.Save(w); err != nil {
		writeError(w, r, err)
		return false
	}
	return true
}

func cartAction(c *cart.Cart, productID int64, item *cart.CartItem, msg string) CartActionResponse {
	resp := CartActionResponse{
		ProductID:     productID,
		Subtotal:      money(decimal.Zero),
		TotalQuantity: c.TotalQuantity(),
		TotalPrice:    money(c.TotalPrice()),
		Removed:       item == nil,
		Message:       msg,
	}
	if item != nil {
		qty := item.Quantity
		resp.Quantity = &qty
		resp.Subtotal = money(item.Subtotal())
	}
	return resp
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
