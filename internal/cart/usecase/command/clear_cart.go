package command

import (
	"context"

	"github.com/tair/storefront/internal/cart/domain"
)

// ClearCartCommand represents the command to empty the cart
type ClearCartCommand struct{}

// ClearCartHandler handles clear cart command
type ClearCartHandler struct {
	cart domain.CartRepository
}

// NewClearCartHandler creates a new clear cart handler
func NewClearCartHandler(cart domain.CartRepository) *ClearCartHandler {
	return &ClearCartHandler{cart: cart}
}

// Handle executes the clear cart command
func (h *ClearCartHandler) Handle(_ context.Context, _ ClearCartCommand) {
	h.cart.Clear()
}
