package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductDefinition is one entry of the seed list the catalog is built from.
// Optional fields left at their zero value take the catalog defaults.
type ProductDefinition struct {
	Name          string
	Category      Category
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Description   string
	Featured      bool
	Sizes         []string
	Colors        []string
	Rating        *float64
	OutOfStock    bool
}

// Validate checks the definition found at position index of the seed list
func (d ProductDefinition) Validate(index int) error {
	fail := func(field, reason string) error {
		return &ValidationError{Index: index, Name: d.Name, Field: field, Reason: reason}
	}

	if strings.TrimSpace(d.Name) == "" {
		return fail("name", "is required")
	}
	if d.Category == "" {
		return fail("category", "is required")
	}
	if !d.Category.IsValid() {
		return fail("category", "is not a storefront department: "+string(d.Category))
	}
	if !d.Price.IsPositive() {
		return fail("price", "must be positive")
	}
	if d.OriginalPrice != nil && !d.OriginalPrice.GreaterThan(d.Price) {
		return fail("original_price", "must be greater than price")
	}
	if strings.TrimSpace(d.Description) == "" {
		return fail("description", "is required")
	}
	if d.Rating != nil && (*d.Rating < 0 || *d.Rating > MaxRating) {
		return fail("rating", "must be between 0 and 5")
	}
	if reason := checkLabels(d.Sizes); reason != "" {
		return fail("sizes", reason)
	}
	if reason := checkLabels(d.Colors); reason != "" {
		return fail("colors", reason)
	}
	return nil
}

// checkLabels reports why a size or colour list is not an ordered set
func checkLabels(labels []string) string {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			return "must not contain blank labels"
		}
		if _, dup := seen[l]; dup {
			return "must not repeat " + l
		}
		seen[l] = struct{}{}
	}
	return ""
}
