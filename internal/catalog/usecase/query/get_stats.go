package query

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/catalog/domain"
)

// GetStatsQuery represents the query to get catalog statistics
type GetStatsQuery struct{}

// CategoryStats summarises one department
type CategoryStats struct {
	Category domain.Category `json:"category"`
	Products int             `json:"products"`
}

// CatalogStats represents catalog statistics
type CatalogStats struct {
	TotalProducts    int             `json:"total_products"`
	FeaturedProducts int             `json:"featured_products"`
	OnSaleProducts   int             `json:"on_sale_products"`
	InStockProducts  int             `json:"in_stock_products"`
	AveragePrice     decimal.Decimal `json:"average_price"`
	Categories       []CategoryStats `json:"categories"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.ProductRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context, _ GetStatsQuery) *CatalogStats {
	products := h.repo.FindAll(ctx)

	stats := &CatalogStats{
		TotalProducts: len(products),
		AveragePrice:  decimal.Zero,
	}

	perCategory := make(map[domain.Category]int)
	total := decimal.Zero
	for _, p := range products {
		if p.Featured {
			stats.FeaturedProducts++
		}
		if p.OnSale() {
			stats.OnSaleProducts++
		}
		if p.InStock {
			stats.InStockProducts++
		}
		total = total.Add(p.Price)
		perCategory[p.Category]++
	}

	if len(products) > 0 {
		stats.AveragePrice = total.Div(decimal.NewFromInt(int64(len(products)))).Round(2)
	}

	for _, c := range domain.Categories {
		stats.Categories = append(stats.Categories, CategoryStats{Category: c, Products: perCategory[c]})
	}

	return stats
}
