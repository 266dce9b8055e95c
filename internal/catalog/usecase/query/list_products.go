package query

import (
	"context"
	"strings"

	"github.com/tair/storefront/internal/catalog/domain"
)

// ListProductsQuery represents the category/search filter of the storefront
type ListProductsQuery struct {
	Category string // "all" or empty matches every category
	Search   string
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) []*domain.Product {
	category := domain.Category(strings.TrimSpace(query.Category))
	if strings.EqualFold(string(category), string(domain.CategoryAll)) {
		category = domain.CategoryAll
	}
	return h.repo.Filter(ctx, category, query.Search)
}
