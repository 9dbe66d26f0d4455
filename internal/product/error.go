package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNoUpdates       = errors.New("request body has no fields to update")
	ErrInvalidPrice    = errors.New("price must be non-negative")
)
