package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusNew       OrderStatus = "NEW"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusCanceled  OrderStatus = "CANCELED"
)

const (
	PaymentCreditCard     = "Credit Card"
	PaymentPayPal         = "PayPal"
	PaymentCashOnDelivery = "Cash on Delivery"

	DeliveryCourier     = "Courier Delivery"
	DeliveryPickupPoint = "Pickup Point"
	DeliveryNovaPoshta  = "Nova Poshta"
)

var (
	PaymentMethods  = []string{PaymentCreditCard, PaymentPayPal, PaymentCashOnDelivery}
	DeliveryMethods = []string{DeliveryCourier, DeliveryPickupPoint, DeliveryNovaPoshta}
)

// Order is a committed checkout. Totals are denormalized from Items at
// creation and never re-derived.
type Order struct {
	ID             string
	UserID         *int64
	Username       string
	FullName       string
	Email          string
	Phone          string
	Address        string
	City           string
	PostalCode     string
	DeliveryMethod string
	PaymentMethod  string
	CardLastFour   *string
	Notes          *string
	Status         OrderStatus
	TotalQuantity  int
	TotalPrice     decimal.Decimal
	CreatedAt      time.Time
	Items          []*OrderItem
}

// OrderItem is a snapshot of a product at checkout time. ProductID is nil
// once the product is gone from the catalog.
type OrderItem struct {
	ID          int64
	OrderID     string
	ProductID   *int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// CreateOrderInput is the checkout payload. CardNumber may contain spaces;
// they are stripped before validation.
type CreateOrderInput struct {
	FullName       string          `json:"fullName" validate:"required,max=120"`
	Email          string          `json:"email" validate:"required,email"`
	Phone          string          `json:"phone" validate:"required,phone"`
	Address        string          `json:"address" validate:"required,max=200"`
	City           string          `json:"city" validate:"required,max=100"`
	PostalCode     string          `json:"postalCode" validate:"required,max=20"`
	DeliveryMethod string          `json:"deliveryMethod" validate:"required"`
	PaymentMethod  string          `json:"paymentMethod" validate:"required"`
	CardNumber     string          `json:"cardNumber" validate:"omitempty,digits,min=12,max=19"`
	Notes          string          `json:"notes" validate:"max=300"`
	Items          []LineItemInput `json:"items" validate:"dive"`
	UserID         *int64          `json:"-"`
	Username       string          `json:"-"`
}

type LineItemInput struct {
	ProductID   *int64          `json:"productId"`
	ProductName string          `json:"productName" validate:"required,max=255"`
	Quantity    int             `json:"quantity" validate:"gt=0,lte=10000"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"gt=0,money"`
}

// UsesCard reports whether the payment method is paid by card.
func UsesCard(paymentMethod string) bool {
	return paymentMethod != "" && paymentMethod != PaymentCashOnDelivery
}

// MaskedCard renders the stored last four digits for display.
func (o *Order) MaskedCard() string {
	if o.CardLastFour == nil || !UsesCard(o.PaymentMethod) {
		return ""
	}
	return "**** **** **** " + *o.CardLastFour
}

// VisibleTo reports whether userID may view the order. Guest orders are
// visible to anyone holding the id.
func (o *Order) VisibleTo(userID int64, authenticated bool) bool {
	if o.UserID == nil {
		return true
	}
	return authenticated && *o.UserID == userID
}
