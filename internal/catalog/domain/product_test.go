package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountPercent(t *testing.T) {
	orig := decimal.RequireFromString("125.00")
	onSale := &Product{Price: decimal.RequireFromString("89.50"), OriginalPrice: &orig}
	assert.Equal(t, 28, DiscountPercent(onSale))

	orig2 := decimal.RequireFromString("165.00")
	poplin := &Product{Price: decimal.RequireFromString("135.00"), OriginalPrice: &orig2}
	assert.Equal(t, 18, DiscountPercent(poplin))

	full := &Product{Price: decimal.RequireFromString("95.00")}
	assert.Equal(t, 0, DiscountPercent(full))
	assert.False(t, full.OnSale())
}

func TestProductSelections(t *testing.T) {
	p := &Product{Sizes: DefaultSizes, Colors: DefaultColors}

	assert.True(t, p.HasSize("XXL"))
	assert.False(t, p.HasSize("xxl"))
	assert.True(t, p.HasColor("Burgundy"))
	assert.False(t, p.HasColor("Green"))
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, CategoryAll.IsValid())
	assert.False(t, Category("polo shirts").IsValid())
}

func TestProductDefinition_RejectsRepeatedLabels(t *testing.T) {
	d := ProductDefinition{
		Name:        "Polo",
		Category:    CategoryPoloShirts,
		Price:       decimal.RequireFromString("89.50"),
		Description: "Cotton polo",
		Sizes:       []string{"S", "M", "M"},
	}

	err := d.Validate(4)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sizes", verr.Field)
	assert.Equal(t, 4, verr.Index)

	d.Sizes = []string{"S", "M"}
	d.Colors = []string{"Navy", "White", "Navy"}
	require.ErrorAs(t, d.Validate(4), &verr)
	assert.Equal(t, "colors", verr.Field)

	d.Colors = nil
	assert.NoError(t, d.Validate(4))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Index: 2, Name: "Polo", Field: "price", Reason: "must be positive"}
	assert.Equal(t, "seed entry 2 (Polo): price must be positive", err.Error())
	assert.ErrorIs(t, err, ErrInvalidSeed)
}
