package domain

import (
	"slices"

	"github.com/shopspring/decimal"

	catalog "github.com/tair/storefront/internal/catalog/domain"
)

// Selection used when the storefront page submits no size or color
const (
	DefaultSize  = "M"
	DefaultColor = "Navy"
)

// Fingerprint identifies a cart line. Two additions with the same
// fingerprint merge into one line.
type Fingerprint struct {
	ProductID uint   `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// Line is one cart entry. Product is shared with the catalog and never
// modified through the cart.
type Line struct {
	Product  *catalog.Product
	Quantity int
	Size     string
	Color    string
}

// Fingerprint returns the merge key of the line
func (l Line) Fingerprint() Fingerprint {
	return Fingerprint{ProductID: l.Product.ID, Size: l.Size, Color: l.Color}
}

// LineTotal is the line's price times its quantity
func LineTotal(l Line) decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps lines in insertion order. It is not safe for concurrent use;
// see store.MemoryStore for the locked wrapper.
type Cart struct {
	lines []*Line
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// AddItem adds one unit of product in the given size and color. The cart is
// left unchanged when the product does not offer the selection.
func (c *Cart) AddItem(product *catalog.Product, size, color string) (Line, error) {
	if !product.HasSize(size) {
		return Line{}, &InvalidSelectionError{ProductID: product.ID, Field: "size", Value: size}
	}
	if !product.HasColor(color) {
		return Line{}, &InvalidSelectionError{ProductID: product.ID, Field: "color", Value: color}
	}

	fp := Fingerprint{ProductID: product.ID, Size: size, Color: color}
	if i := c.index(fp); i >= 0 {
		c.lines[i].Quantity++
		return *c.lines[i], nil
	}

	line := &Line{Product: product, Quantity: 1, Size: size, Color: color}
	c.lines = append(c.lines, line)
	return *line, nil
}

// RemoveItem drops the matching line whatever its quantity. Removing a line
// that is not in the cart is a no-op; the result reports whether one was
// removed.
func (c *Cart) RemoveItem(fp Fingerprint) bool {
	i := c.index(fp)
	if i < 0 {
		return false
	}
	c.lines = slices.Delete(c.lines, i, i+1)
	return true
}

// IncreaseQuantity adds one unit to the matching line
func (c *Cart) IncreaseQuantity(fp Fingerprint) (Line, error) {
	i := c.index(fp)
	if i < 0 {
		return Line{}, ErrLineNotFound
	}
	c.lines[i].Quantity++
	return *c.lines[i], nil
}

// DecreaseQuantity removes one unit from the matching line, dropping the
// line when its last unit goes. The returned bool is false when the line
// was removed.
func (c *Cart) DecreaseQuantity(fp Fingerprint) (Line, bool, error) {
	i := c.index(fp)
	if i < 0 {
		return Line{}, false, ErrLineNotFound
	}
	if c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
		return *c.lines[i], true, nil
	}
	removed := *c.lines[i]
	removed.Quantity = 0
	c.lines = slices.Delete(c.lines, i, i+1)
	return removed, false, nil
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
}

// Total is the sum of all line totals
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(LineTotal(*l))
	}
	return total
}

// ItemCount is the number of units across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, *l)
	}
	return out
}

// Len is the number of distinct lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// Find returns the line with the given fingerprint
func (c *Cart) Find(fp Fingerprint) (Line, bool) {
	i := c.index(fp)
	if i < 0 {
		return Line{}, false
	}
	return *c.lines[i], true
}

func (c *Cart) index(fp Fingerprint) int {
	return slices.IndexFunc(c.lines, func(l *Line) bool {
		return l.Fingerprint() == fp
	})
}

// Snapshot is a consistent copy of the cart's lines and totals
type Snapshot struct {
	Lines     []Line
	Total     decimal.Decimal
	ItemCount int
}

// CartRepository holds the process's cart
type CartRepository interface {
	AddItem(product *catalog.Product, size, color string) (Line, error)
	RemoveItem(fp Fingerprint) bool
	IncreaseQuantity(fp Fingerprint) (Line, error)
	DecreaseQuantity(fp Fingerprint) (Line, bool, error)
	Clear()
	Snapshot() Snapshot
	// Drain returns the contents and empties the cart atomically
	Drain() Snapshot
}
