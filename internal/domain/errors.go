package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrOverRelease         = errors.New("cannot release more stock than reserved")
	ErrOverReduce          = errors.New("cannot reduce more stock than reserved")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrProductNotFound     = errors.New("product not found")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidID           = errors.New("invalid id")
	ErrProductNameRequired = errors.New("product name required")
	ErrInvalidPrice        = errors.New("price must not be negative")
	ErrInvalidStock        = errors.New("stock quantity must not be negative")
)

// InsufficientStockError reports a failed stock check along with the state
// that caused it, so callers can surface the shortfall per product.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available, %d requested",
		e.ProductID, e.Available, e.Requested)
}
