package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyOrder    = errors.New("order must contain at least one item")
	ErrStorage       = errors.New("failed to store order")
	ErrAccessDenied  = errors.New("access denied")
)
