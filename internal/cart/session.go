package cart

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	SessionKey     = "cart"
	sessionVersion = 1
)

// SessionStore is the slice of a per-request session the codec needs.
type SessionStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

type sessionPayload struct {
	Version int                    `json:"version"`
	Items   map[string]sessionItem `json:"items"`
}

type sessionItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// LoadFromSession rebuilds the cart stored under SessionKey. A missing payload
// is an empty cart. A payload that cannot be trusted yields an empty cart
// together with ErrCorruptSession; the next save replaces it.
func LoadFromSession(store SessionStore) (*Cart, error) {
	raw, ok := store.Get(SessionKey)
	if !ok || raw == "" {
		return New(), nil
	}

	var payload sessionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return New(), fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if payload.Version != sessionVersion {
		return New(), fmt.Errorf("%w: unsupported version %d", ErrCorruptSession, payload.Version)
	}

	c := New()
	for key, item := range payload.Items {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return New(), fmt.Errorf("%w: product id %q", ErrCorruptSession, key)
		}
		if item.Quantity <= 0 || item.Price.IsNegative() {
			return New(), fmt.Errorf("%w: product %d has quantity %d price %s",
				ErrCorruptSession, id, item.Quantity, item.Price)
		}
		c.items[id] = &CartItem{
			ProductID: id,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}
	return c, nil
}

// SaveToSession overwrites the stored cart with c.
func SaveToSession(store SessionStore, c *Cart) error {
	payload := sessionPayload{
		Version: sessionVersion,
		Items:   make(map[string]sessionItem, len(c.items)),
	}
	for id, item := range c.items {
		payload.Items[strconv.FormatInt(id, 10)] = sessionItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cart session: %w", err)
	}
	store.Set(SessionKey, string(data))
	return nil
}
