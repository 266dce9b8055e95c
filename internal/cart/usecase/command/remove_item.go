package command

import (
	"context"

	"github.com/tair/storefront/internal/cart/domain"
)

// RemoveItemCommand represents the command to drop a cart line
type RemoveItemCommand struct {
	Fingerprint domain.Fingerprint
}

// RemoveItemHandler handles remove item command
type RemoveItemHandler struct {
	cart domain.CartRepository
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(cart domain.CartRepository) *RemoveItemHandler {
	return &RemoveItemHandler{cart: cart}
}

// Handle executes the remove item command. Removing an absent line is not
// an error; the result reports whether anything was removed.
func (h *RemoveItemHandler) Handle(_ context.Context, cmd RemoveItemCommand) bool {
	return h.cart.RemoveItem(cmd.Fingerprint)
}
