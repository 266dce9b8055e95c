package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	catalog "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/pkg/logger"
)

// productView adds the derived sale badge to a product
type productView struct {
	*catalog.Product
	DiscountPercent int `json:"discount_percent,omitempty"`
}

func newProductViews(products []*catalog.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{Product: p, DiscountPercent: catalog.DiscountPercent(p)})
	}
	return views
}

// ListProducts handles GET /api/products
func (h *StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := query.ListProductsQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
	}

	products := h.listHandler.Handle(r.Context(), q)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": newProductViews(products),
			"total":    len(products),
		},
	})
}

// GetProduct handles GET /api/products/{id}
func (h *StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: uint(id)})
	if err != nil {
		logger.Debug(r.Context()).Err(err).Uint64("product_id", id).Msg("Product lookup failed")
		respondJSON(w, statusFor(err), Response{
			Success: false,
			Error:   "Product not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    productView{Product: product, DiscountPercent: catalog.DiscountPercent(product)},
	})
}

// GetStats handles GET /api/products/stats
func (h *StorefrontHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    stats,
	})
}

// ListCategories handles GET /api/categories
func (h *StorefrontHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"categories": catalog.Categories,
		},
	})
}
