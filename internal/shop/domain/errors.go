package domain

import "errors"

// Error taxonomy shared by services and the API layer. Services fail fast
// with one of these before persisting; the API layer maps them to HTTP
// statuses with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidPrice      = errors.New("price cannot be negative")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrAlreadyExists     = errors.New("already exists")
)
