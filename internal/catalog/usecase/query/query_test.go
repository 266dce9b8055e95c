package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/repository"
	"github.com/tair/storefront/internal/catalog/seed"
)

func setupRepo(t *testing.T) domain.ProductRepository {
	t.Helper()
	defs, err := seed.Default()
	require.NoError(t, err)
	repo := repository.NewMemoryProductRepository(nil)
	require.NoError(t, repo.Load(defs))
	return repository.NewTracingProductRepository(repo)
}

func TestGetProductHandler(t *testing.T) {
	h := NewGetProductHandler(setupRepo(t))
	ctx := context.Background()

	p, err := h.Handle(ctx, GetProductQuery{ID: 4})
	require.NoError(t, err)
	assert.Equal(t, "Oxford Dress Shirt", p.Name)

	_, err = h.Handle(ctx, GetProductQuery{ID: 0})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = h.Handle(ctx, GetProductQuery{ID: 404})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestListProductsHandler(t *testing.T) {
	h := NewListProductsHandler(setupRepo(t))
	ctx := context.Background()

	assert.Len(t, h.Handle(ctx, ListProductsQuery{}), 18)
	assert.Len(t, h.Handle(ctx, ListProductsQuery{Category: "All"}), 18)
	assert.Len(t, h.Handle(ctx, ListProductsQuery{Category: " Sweaters "}), 3)
	assert.Len(t, h.Handle(ctx, ListProductsQuery{Category: "Accessories", Search: "SCARF"}), 2)
	assert.Empty(t, h.Handle(ctx, ListProductsQuery{Category: "Accessories", Search: "blazer"}))
}

func TestGetStatsHandler(t *testing.T) {
	h := NewGetStatsHandler(setupRepo(t))

	stats := h.Handle(context.Background(), GetStatsQuery{})
	assert.Equal(t, 18, stats.TotalProducts)
	assert.Equal(t, 4, stats.FeaturedProducts)
	assert.Equal(t, 5, stats.OnSaleProducts)
	assert.Equal(t, 18, stats.InStockProducts)
	assert.Equal(t, "205.64", stats.AveragePrice.StringFixed(2))

	require.Len(t, stats.Categories, 6)
	for _, c := range stats.Categories {
		assert.Equal(t, 3, c.Products, c.Category)
	}
}

func TestGetStatsHandler_EmptyCatalog(t *testing.T) {
	h := NewGetStatsHandler(repository.NewMemoryProductRepository(nil))

	stats := h.Handle(context.Background(), GetStatsQuery{})
	assert.Zero(t, stats.TotalProducts)
	assert.True(t, stats.AveragePrice.IsZero())
	assert.Len(t, stats.Categories, 6)
}
