package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/storefront/internal/cart/domain"
	catalog "github.com/tair/storefront/internal/catalog/domain"
)

// AddItemCommand represents the command to put one unit of a product in the cart
type AddItemCommand struct {
	ProductID uint
	Size      string
	Color     string
}

// AddItemResult is the updated line plus the notice shown to the shopper
type AddItemResult struct {
	Line   domain.Line
	Notice string
}

// AddItemHandler handles add item command
type AddItemHandler struct {
	products catalog.ProductRepository
	cart     domain.CartRepository
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(products catalog.ProductRepository, cart domain.CartRepository) *AddItemHandler {
	return &AddItemHandler{products: products, cart: cart}
}

// Handle executes the add item command
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*AddItemResult, error) {
	product, err := h.products.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	size := strings.TrimSpace(cmd.Size)
	if size == "" {
		size = domain.DefaultSize
	}
	color := strings.TrimSpace(cmd.Color)
	if color == "" {
		color = domain.DefaultColor
	}

	line, err := h.cart.AddItem(product, size, color)
	if err != nil {
		return nil, fmt.Errorf("failed to add product %d: %w", product.ID, err)
	}

	return &AddItemResult{
		Line:   line,
		Notice: fmt.Sprintf("Added %s to cart", product.Name),
	}, nil
}
