// Package seed decodes the product definitions the catalog is loaded from.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tair/storefront/internal/catalog/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type document struct {
	Products []entry `yaml:"products"`
}

type entry struct {
	Name          string   `yaml:"name"`
	Category      string   `yaml:"category"`
	Price         string   `yaml:"price"`
	OriginalPrice string   `yaml:"original_price"`
	Description   string   `yaml:"description"`
	Featured      bool     `yaml:"featured"`
	Sizes         []string `yaml:"sizes"`
	Colors        []string `yaml:"colors"`
	Rating        *float64 `yaml:"rating"`
	OutOfStock    bool     `yaml:"out_of_stock"`
}

// Default returns the definitions bundled with the binary
func Default() ([]domain.ProductDefinition, error) {
	return Decode(bytes.NewReader(defaultCatalog))
}

// Decode reads a YAML seed document. Prices are parsed as exact decimals;
// a price that does not parse is reported as a ValidationError.
func Decode(r io.Reader) ([]domain.ProductDefinition, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode seed catalog: %w", err)
	}

	defs := make([]domain.ProductDefinition, 0, len(doc.Products))
	for i, e := range doc.Products {
		def, err := e.toDefinition(i)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (e entry) toDefinition(index int) (domain.ProductDefinition, error) {
	def := domain.ProductDefinition{
		Name:        strings.TrimSpace(e.Name),
		Category:    domain.Category(strings.TrimSpace(e.Category)),
		Description: strings.TrimSpace(e.Description),
		Featured:    e.Featured,
		Sizes:       e.Sizes,
		Colors:      e.Colors,
		Rating:      e.Rating,
		OutOfStock:  e.OutOfStock,
	}

	if strings.TrimSpace(e.Price) != "" {
		price, err := decimal.NewFromString(strings.TrimSpace(e.Price))
		if err != nil {
			return def, &domain.ValidationError{Index: index, Name: def.Name, Field: "price", Reason: "is not a decimal"}
		}
		def.Price = price
	}

	if strings.TrimSpace(e.OriginalPrice) != "" {
		orig, err := decimal.NewFromString(strings.TrimSpace(e.OriginalPrice))
		if err != nil {
			return def, &domain.ValidationError{Index: index, Name: def.Name, Field: "original_price", Reason: "is not a decimal"}
		}
		def.OriginalPrice = &orig
	}

	return def, nil
}
