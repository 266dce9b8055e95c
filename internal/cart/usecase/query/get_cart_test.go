package query

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/cart/store"
	catalog "github.com/tair/storefront/internal/catalog/domain"
)

func TestGetCartHandler(t *testing.T) {
	cart := store.NewMemoryStore()
	h := NewGetCartHandler(cart)

	view := h.Handle(context.Background(), GetCartQuery{})
	assert.True(t, view.IsEmpty())
	assert.NotNil(t, view.Lines)
	assert.Equal(t, "0.00", view.Total.StringFixed(2))

	sweater := &catalog.Product{
		ID:     7,
		Name:   "Cable-Knit Sweater",
		Price:  decimal.RequireFromString("198.50"),
		Sizes:  catalog.DefaultSizes,
		Colors: catalog.DefaultColors,
	}
	_, err := cart.AddItem(sweater, "L", "Black")
	require.NoError(t, err)
	_, err = cart.AddItem(sweater, "L", "Black")
	require.NoError(t, err)

	view = h.Handle(context.Background(), GetCartQuery{})
	require.Len(t, view.Lines, 1)
	line := view.Lines[0]
	assert.Equal(t, uint(7), line.ProductID)
	assert.Equal(t, "Cable-Knit Sweater", line.Name)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "397.00", line.LineTotal.StringFixed(2))
	assert.Equal(t, "397.00", view.Total.StringFixed(2))
	assert.Equal(t, 2, view.ItemCount)
}
