package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is matched by every InvalidSelectionError
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrLineNotFound indicates an operation on a line the cart does not hold
	ErrLineNotFound = errors.New("cart line not found")

	// ErrEmptyCart indicates a checkout with nothing in the cart
	ErrEmptyCart = errors.New("cart is empty")
)

// InvalidSelectionError reports a size or color the product is not offered in
type InvalidSelectionError struct {
	ProductID uint
	Field     string
	Value     string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("product %d is not available in %s %q", e.ProductID, e.Field, e.Value)
}

func (e *InvalidSelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}
