package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/imageref"
)

// MemoryProductRepository holds the catalog in insertion order. It is filled
// once by Load and is read-only afterwards, so readers need no locking.
type MemoryProductRepository struct {
	images   imageref.Provider
	products []*domain.Product
	byID     map[uint]*domain.Product
}

// NewMemoryProductRepository creates an empty catalog
func NewMemoryProductRepository(images imageref.Provider) *MemoryProductRepository {
	return &MemoryProductRepository{
		images: images,
		byID:   make(map[uint]*domain.Product),
	}
}

// Load builds the catalog from seed definitions, assigning ids 1..n in seed
// order. The first invalid definition aborts the load and leaves the
// repository empty.
func (r *MemoryProductRepository) Load(defs []domain.ProductDefinition) error {
	products := make([]*domain.Product, 0, len(defs))
	for i, def := range defs {
		if err := def.Validate(i); err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		products = append(products, r.build(uint(i+1), def))
	}

	byID := make(map[uint]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	r.products = products
	r.byID = byID
	return nil
}

func (r *MemoryProductRepository) build(id uint, def domain.ProductDefinition) *domain.Product {
	sizes := slices.Clone(def.Sizes)
	if len(sizes) == 0 {
		sizes = slices.Clone(domain.DefaultSizes)
	}
	colors := slices.Clone(def.Colors)
	if len(colors) == 0 {
		colors = slices.Clone(domain.DefaultColors)
	}
	rating := domain.DefaultRating
	if def.Rating != nil {
		rating = *def.Rating
	}

	var image string
	if r.images != nil {
		image = r.images.ImageFor(string(def.Category))
	}

	return &domain.Product{
		ID:            id,
		Name:          def.Name,
		Category:      def.Category,
		Price:         def.Price,
		OriginalPrice: def.OriginalPrice,
		Description:   def.Description,
		ImageURL:      image,
		Sizes:         sizes,
		Colors:        colors,
		InStock:       !def.OutOfStock,
		Featured:      def.Featured,
		Rating:        rating,
		ReviewsCount:  reviewsCount(def.Name),
	}
}

// reviewsCount derives a stable review count in [10, 210) from the name
func reviewsCount(name string) int {
	return int(xxhash.Sum64String(name)%200) + 10
}

func (r *MemoryProductRepository) FindAll(_ context.Context) []*domain.Product {
	return slices.Clone(r.products)
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	return p, nil
}

// Filter returns the products in category (or every category for "all" and
// the empty string) whose name or description contains query, ignoring
// case. Catalog order is preserved and no match yields an empty slice.
func (r *MemoryProductRepository) Filter(_ context.Context, category domain.Category, query string) []*domain.Product {
	needle := strings.ToLower(query)
	matchAll := category == domain.CategoryAll || category == ""

	result := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if !matchAll && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func (r *MemoryProductRepository) Count() int {
	return len(r.products)
}
