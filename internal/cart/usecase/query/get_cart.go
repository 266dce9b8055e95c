package query

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/cart/domain"
)

// LineView is a cart line as presented to the shopper
type LineView struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartView is the cart contents with derived totals
type CartView struct {
	Lines     []LineView      `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// IsEmpty reports whether the cart holds no lines
func (v *CartView) IsEmpty() bool {
	return len(v.Lines) == 0
}

// GetCartQuery represents the query to read the cart
type GetCartQuery struct{}

// GetCartHandler handles get cart query
type GetCartHandler struct {
	cart domain.CartRepository
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(cart domain.CartRepository) *GetCartHandler {
	return &GetCartHandler{cart: cart}
}

// Handle executes the get cart query
func (h *GetCartHandler) Handle(_ context.Context, _ GetCartQuery) *CartView {
	return NewCartView(h.cart.Snapshot())
}

// NewCartView builds the view of a snapshot
func NewCartView(snap domain.Snapshot) *CartView {
	lines := make([]LineView, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, NewLineView(l))
	}
	return &CartView{Lines: lines, Total: snap.Total, ItemCount: snap.ItemCount}
}

// NewLineView builds the view of a single line
func NewLineView(l domain.Line) LineView {
	return LineView{
		ProductID: l.Product.ID,
		Name:      l.Product.Name,
		ImageURL:  l.Product.ImageURL,
		Size:      l.Size,
		Color:     l.Color,
		Quantity:  l.Quantity,
		UnitPrice: l.Product.Price,
		LineTotal: domain.LineTotal(l),
	}
}
