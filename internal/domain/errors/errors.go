package errors

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("invalid request")
	ErrItemNotFound    = errors.New("menu item not found in store")
	ErrItemUnavailable = errors.New("menu item unavailable")
	ErrPriceMismatch   = errors.New("paid amount does not match server total")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
