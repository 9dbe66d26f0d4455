package order

import (
	"encoding/json"
	"time"

	"storefront/internal/messaging"

	"github.com/shopspring/decimal"
)

func ToCreatedMessage(o *Order) messaging.OrderCreatedMessage {
	items := make([]messaging.OrderCreatedItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, messaging.OrderCreatedItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Subtotal:    money(it.Subtotal),
		})
	}

	return messaging.OrderCreatedMessage{
		OrderID:    o.ID,
		Username:   o.Username,
		Items:      items,
		TotalPrice: money(o.TotalPrice),
	}
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type OrderResponse struct {
	ID             string              `json:"id"`
	CreatedAt      time.Time           `json:"createdAt"`
	FullName       string              `json:"fullName"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	Address        string              `json:"address"`
	City           string              `json:"city"`
	PostalCode     string              `json:"postalCode"`
	DeliveryMethod string              `json:"deliveryMethod"`
	PaymentMethod  string              `json:"paymentMethod"`
	CardLastFour   *string             `json:"cardLastFour,omitempty"`
	Notes          *string             `json:"notes,omitempty"`
	Status         OrderStatus         `json:"status"`
	TotalQuantity  int                 `json:"totalQuantity"`
	TotalPrice     json.Number         `json:"totalPrice"`
	UserID         *int64              `json:"userId,omitempty"`
	Items          []OrderItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ID          int64       `json:"id"`
	ProductID   *int64      `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	UnitPrice   json.Number `json:"unitPrice"`
	Subtotal    json.Number `json:"subtotal"`
}

func ToResponse(o *Order) *OrderResponse {
	if o == nil {
		return nil
	}

	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   money(it.UnitPrice),
			Subtotal:    money(it.Subtotal),
		})
	}

	return &OrderResponse{
		ID:             o.ID,
		CreatedAt:      o.CreatedAt,
		FullName:       o.FullName,
		Email:          o.Email,
		Phone:          o.Phone,
		Address:        o.Address,
		City:           o.City,
		PostalCode:     o.PostalCode,
		DeliveryMethod: o.DeliveryMethod,
		PaymentMethod:  o.PaymentMethod,
		CardLastFour:   o.CardLastFour,
		Notes:          o.Notes,
		Status:         o.Status,
		TotalQuantity:  o.TotalQuantity,
		TotalPrice:     money(o.TotalPrice),
		UserID:         o.UserID,
		Items:          items,
	}
}

func ToResponses(orders []*Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToResponse(o))
	}
	return out
}
