package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/cart/domain"
)

// IncreaseQuantityCommand represents the command to add one unit to a line
type IncreaseQuantityCommand struct {
	Fingerprint domain.Fingerprint
}

// IncreaseQuantityHandler handles increase quantity command
type IncreaseQuantityHandler struct {
	cart domain.CartRepository
}

// NewIncreaseQuantityHandler creates a new increase quantity handler
func NewIncreaseQuantityHandler(cart domain.CartRepository) *IncreaseQuantityHandler {
	return &IncreaseQuantityHandler{cart: cart}
}

// Handle executes the increase quantity command
func (h *IncreaseQuantityHandler) Handle(_ context.Context, cmd IncreaseQuantityCommand) (domain.Line, error) {
	line, err := h.cart.IncreaseQuantity(cmd.Fingerprint)
	if err != nil {
		return domain.Line{}, fmt.Errorf("failed to increase quantity of product %d: %w", cmd.Fingerprint.ProductID, err)
	}
	return line, nil
}

// DecreaseQuantityCommand represents the command to take one unit off a line
type DecreaseQuantityCommand struct {
	Fingerprint domain.Fingerprint
}

// DecreaseQuantityResult carries the line after the decrement. Removed is
// set when the last unit went and the line left the cart.
type DecreaseQuantityResult struct {
	Line    domain.Line
	Removed bool
}

// DecreaseQuantityHandler handles decrease quantity command
type DecreaseQuantityHandler struct {
	cart domain.CartRepository
}

// NewDecreaseQuantityHandler creates a new decrease quantity handler
func NewDecreaseQuantityHandler(cart domain.CartRepository) *DecreaseQuantityHandler {
	return &DecreaseQuantityHandler{cart: cart}
}

// Handle executes the decrease quantity command
func (h *DecreaseQuantityHandler) Handle(_ context.Context, cmd DecreaseQuantityCommand) (*DecreaseQuantityResult, error) {
	line, kept, err := h.cart.DecreaseQuantity(cmd.Fingerprint)
	if err != nil {
		return nil, fmt.Errorf("failed to decrease quantity of product %d: %w", cmd.Fingerprint.ProductID, err)
	}
	return &DecreaseQuantityResult{Line: line, Removed: !kept}, nil
}
