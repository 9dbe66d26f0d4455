package cart

import "errors"

var (
	// -- Resource State --
	ErrCartItemNotFound = errors.New("product not found in cart")
	ErrCartEmpty        = errors.New("cart is empty")

	// -- Session payload --
	ErrCorruptSession = errors.New("cart session payload is corrupt")
)
