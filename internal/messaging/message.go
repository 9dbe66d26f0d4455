package messaging

import "encoding/json"

// OrderCreatedMessage is the body published when an order is created.
// Money fields are JSON numbers rendered from exact decimals.
type OrderCreatedMessage struct {
	OrderID    string             `json:"orderId"`
	Username   string             `json:"username"`
	Items      []OrderCreatedItem `json:"items"`
	TotalPrice json.Number        `json:"totalPrice"`
}

type OrderCreatedItem struct {
	ProductID   *int64      `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	Subtotal    json.Number `json:"subtotal"`
}

func (m OrderCreatedMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}
