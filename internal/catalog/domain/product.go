package domain

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"
)

// Category is one of the fixed storefront departments
type Category string

const (
	CategoryPoloShirts  Category = "Polo Shirts"
	CategoryDressShirts Category = "Dress Shirts"
	CategorySweaters    Category = "Sweaters"
	CategoryBlazers     Category = "Blazers"
	CategoryDresses     Category = "Dresses"
	CategoryAccessories Category = "Accessories"

	// CategoryAll is the filter value that matches every category
	CategoryAll Category = "all"
)

// Categories lists the departments in navigation order
var Categories = []Category{
	CategoryPoloShirts,
	CategoryDressShirts,
	CategorySweaters,
	CategoryBlazers,
	CategoryDresses,
	CategoryAccessories,
}

// IsValid reports whether c is one of the enumerated departments
func (c Category) IsValid() bool {
	return slices.Contains(Categories, c)
}

// Standard selections offered when a seed entry does not list its own
var (
	DefaultSizes  = []string{"XS", "S", "M", "L", "XL", "XXL"}
	DefaultColors = []string{"Navy", "White", "Black", "Grey", "Burgundy"}
)

const (
	DefaultRating = 4.5
	MaxRating     = 5.0
)

// Product is a catalog entry. Products are built once when the catalog is
// loaded and are shared read-only afterwards.
type Product struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name"`
	Category      Category         `json:"category"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Description   string           `json:"description"`
	ImageURL      string           `json:"image_url"`
	Sizes         []string         `json:"sizes"`
	Colors        []string         `json:"colors"`
	InStock       bool             `json:"in_stock"`
	Featured      bool             `json:"featured"`
	Rating        float64          `json:"rating"`
	ReviewsCount  int              `json:"reviews_count"`
}

// HasSize checks if the product is offered in the given size
func (p *Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

// HasColor checks if the product is offered in the given color
func (p *Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}

// OnSale checks if the product carries a reduced price
func (p *Product) OnSale() bool {
	return p.OriginalPrice != nil
}

// DiscountPercent returns the whole-number markdown shown on sale badges,
// or 0 when the product is not on sale.
func DiscountPercent(p *Product) int {
	if !p.OnSale() || p.OriginalPrice.IsZero() {
		return 0
	}
	ratio := p.Price.Div(*p.OriginalPrice)
	return int(decimal.NewFromInt(1).Sub(ratio).Mul(decimal.NewFromInt(100)).IntPart())
}

// ProductRepository defines read access to the loaded catalog
type ProductRepository interface {
	FindAll(ctx context.Context) []*Product
	FindByID(ctx context.Context, id uint) (*Product, error)
	Filter(ctx context.Context, category Category, query string) []*Product
	Count() int
}
