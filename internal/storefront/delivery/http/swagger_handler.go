package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListProducts godoc
// @Summary List products
// @Description Filter the catalog by category and a case-insensitive search over name and description
// @Tags Products
// @Produce json
// @Param category query string false "Category name or all"
// @Param q query string false "Search text"
// @Success 200 {object} object{success=bool,data=object{products=array,total=int}}
// @Router /api/products [get]
func (h *StorefrontHandler) ListProductsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Description Get a single catalog product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/products/{id} [get]
func (h *StorefrontHandler) GetProductDoc() {}

// GetStats godoc
// @Summary Catalog statistics
// @Description Totals, featured and on-sale counts, average price and per-category counts
// @Tags Products
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Router /api/products/stats [get]
func (h *StorefrontHandler) GetStatsDoc() {}

// ListCategories godoc
// @Summary List categories
// @Description Categories in navigation order
// @Tags Products
// @Produce json
// @Success 200 {object} object{success=bool,data=object{categories=array}}
// @Router /api/categories [get]
func (h *StorefrontHandler) ListCategoriesDoc() {}

// GetCart godoc
// @Summary Get cart
// @Description Cart lines with line totals, cart total and item count
// @Tags Cart
// @Produce json
// @Success 200 {object} object{success=bool,data=object{lines=array,total=string,item_count=int}}
// @Router /api/cart [get]
func (h *StorefrontHandler) GetCartDoc() {}

// AddItem godoc
// @Summary Add item to cart
// @Description Add one unit of a product; size defaults to M and color to Navy
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body object{product_id=int,size=string,color=string} true "Selection"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/cart/items [post]
func (h *StorefrontHandler) AddItemDoc() {}

// RemoveItem godoc
// @Summary Remove cart line
// @Description Remove a line whatever its quantity; absent lines are ignored
// @Tags Cart
// @Produce json
// @Param product_id query int true "Product ID"
// @Param size query string true "Size"
// @Param color query string true "Color"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/cart/items [delete]
func (h *StorefrontHandler) RemoveItemDoc() {}

// IncreaseQuantity godoc
// @Summary Increase line quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body object{product_id=int,size=string,color=string} true "Line"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/cart/items/increase [post]
func (h *StorefrontHandler) IncreaseQuantityDoc() {}

// DecreaseQuantity godoc
// @Summary Decrease line quantity
// @Description Remove one unit; the line is dropped when its last unit goes
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body object{product_id=int,size=string,color=string} true "Line"
// @Success 200 {object} object{success=bool,data=object{removed=bool}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/cart/items/decrease [post]
func (h *StorefrontHandler) DecreaseQuantityDoc() {}

// ClearCart godoc
// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Router /api/cart [delete]
func (h *StorefrontHandler) ClearCartDoc() {}

// Checkout godoc
// @Summary Checkout
// @Description Place an order for the cart contents and empty the cart
// @Tags Cart
// @Produce json
// @Success 201 {object} object{success=bool,message=string,data=object{order_id=string,lines=array,total=string,item_count=int}}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/checkout [post]
func (h *StorefrontHandler) CheckoutDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and catalog availability
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *StorefrontHandler) HealthCheckDoc() {}
