package cart

import "errors"

var (
	ErrMissingProvider = errors.New("cart: accessor used outside a cart provider scope")
	ErrMalformedCart   = errors.New("cart: malformed persisted cart")
	ErrInvalidPolicy   = errors.New("cart: invalid decrement policy")
	ErrInvalidProduct  = errors.New("cart: invalid product")
)
