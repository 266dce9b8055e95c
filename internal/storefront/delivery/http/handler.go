package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	cartdomain "github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/usecase/command"
	cartquery "github.com/tair/storefront/internal/cart/usecase/query"
	catalog "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/imageref"
	catalogquery "github.com/tair/storefront/internal/catalog/usecase/query"
)

// StorefrontHandler serves the storefront page and the catalog/cart JSON API
type StorefrontHandler struct {
	// Command handlers
	addItemHandler  *command.AddItemHandler
	removeHandler   *command.RemoveItemHandler
	increaseHandler *command.IncreaseQuantityHandler
	decreaseHandler *command.DecreaseQuantityHandler
	clearHandler    *command.ClearCartHandler
	checkoutHandler *command.CheckoutHandler

	// Query handlers
	getProductHandler *catalogquery.GetProductHandler
	listHandler       *catalogquery.ListProductsHandler
	statsHandler      *catalogquery.GetStatsHandler
	getCartHandler    *cartquery.GetCartHandler

	page      *pageRenderer
	heroImage string

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	cartItems      prometheus.Gauge
	cartValue      prometheus.Gauge
	ordersTotal    prometheus.Counter
}

// NewStorefrontHandler creates a storefront handler (manual DI)
func NewStorefrontHandler(
	products catalog.ProductRepository,
	cart cartdomain.CartRepository,
	publisher command.OrderPublisher,
	images imageref.Provider,
	registerer prometheus.Registerer,
) (*StorefrontHandler, error) {
	return NewStorefrontHandlerWithDI(
		command.NewAddItemHandler(products, cart),
		command.NewRemoveItemHandler(cart),
		command.NewIncreaseQuantityHandler(cart),
		command.NewDecreaseQuantityHandler(cart),
		command.NewClearCartHandler(cart),
		command.NewCheckoutHandler(cart, publisher),
		catalogquery.NewGetProductHandler(products),
		catalogquery.NewListProductsHandler(products),
		catalogquery.NewGetStatsHandler(products),
		cartquery.NewGetCartHandler(cart),
		images,
		registerer,
	)
}

// NewStorefrontHandlerWithDI creates a storefront handler from prepared
// use-case handlers. This is used by Wire.
func NewStorefrontHandlerWithDI(
	addItemHandler *command.AddItemHandler,
	removeHandler *command.RemoveItemHandler,
	increaseHandler *command.IncreaseQuantityHandler,
	decreaseHandler *command.DecreaseQuantityHandler,
	clearHandler *command.ClearCartHandler,
	checkoutHandler *command.CheckoutHandler,
	getProductHandler *catalogquery.GetProductHandler,
	listHandler *catalogquery.ListProductsHandler,
	statsHandler *catalogquery.GetStatsHandler,
	getCartHandler *cartquery.GetCartHandler,
	images imageref.Provider,
	registerer prometheus.Registerer,
) (*StorefrontHandler, error) {
	page, err := newPageRenderer()
	if err != nil {
		return nil, err
	}

	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_requests_total",
			Help: "Total number of requests to the storefront",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_request_duration_seconds",
			Help:    "Duration of storefront requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "storefront_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	cartItems := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cart_items",
		Help: "Number of units currently in the cart",
	})

	cartValue := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cart_value",
		Help: "Current cart total in USD",
	})

	ordersTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_total",
		Help: "Total number of completed checkouts",
	})

	for _, c := range []prometheus.Collector{requestCounter, requestLatency, requestSummary, cartItems, cartValue, ordersTotal} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}

	heroImage := ""
	if images != nil {
		heroImage = images.HeroImage()
	}

	return &StorefrontHandler{
		addItemHandler:    addItemHandler,
		removeHandler:     removeHandler,
		increaseHandler:   increaseHandler,
		decreaseHandler:   decreaseHandler,
		clearHandler:      clearHandler,
		checkoutHandler:   checkoutHandler,
		getProductHandler: getProductHandler,
		listHandler:       listHandler,
		statsHandler:      statsHandler,
		getCartHandler:    getCartHandler,
		page:              page,
		heroImage:         heroImage,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		requestSummary:    requestSummary,
		cartItems:         cartItems,
		cartValue:         cartValue,
		ordersTotal:       ordersTotal,
	}, nil
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *StorefrontHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers the page, form and JSON API routes
func (h *StorefrontHandler) RegisterRoutes(router *mux.Router) {
	// Storefront page and its form posts
	router.HandleFunc("/", h.metricsMiddleware("/", h.Index)).Methods("GET")
	router.HandleFunc("/cart/add", h.metricsMiddleware("/cart/add", h.AddToCartForm)).Methods("POST")
	router.HandleFunc("/cart/remove", h.metricsMiddleware("/cart/remove", h.RemoveFromCartForm)).Methods("POST")
	router.HandleFunc("/cart/increase", h.metricsMiddleware("/cart/increase", h.IncreaseForm)).Methods("POST")
	router.HandleFunc("/cart/decrease", h.metricsMiddleware("/cart/decrease", h.DecreaseForm)).Methods("POST")
	router.HandleFunc("/cart/clear", h.metricsMiddleware("/cart/clear", h.ClearCartForm)).Methods("POST")
	router.HandleFunc("/checkout", h.metricsMiddleware("/checkout", h.CheckoutForm)).Methods("POST")

	// Catalog API
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/stats", h.metricsMiddleware("/api/products/stats", h.GetStats)).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/categories", h.metricsMiddleware("/api/categories", h.ListCategories)).Methods("GET")

	// Cart API
	router.HandleFunc("/api/cart", h.metricsMiddleware("/api/cart", h.GetCart)).Methods("GET")
	router.HandleFunc("/api/cart", h.metricsMiddleware("/api/cart", h.ClearCart)).Methods("DELETE")
	router.HandleFunc("/api/cart/items", h.metricsMiddleware("/api/cart/items", h.AddItem)).Methods("POST")
	router.HandleFunc("/api/cart/items", h.metricsMiddleware("/api/cart/items", h.RemoveItem)).Methods("DELETE")
	router.HandleFunc("/api/cart/items/increase", h.metricsMiddleware("/api/cart/items/increase", h.IncreaseQuantity)).Methods("POST")
	router.HandleFunc("/api/cart/items/decrease", h.metricsMiddleware("/api/cart/items/decrease", h.DecreaseQuantity)).Methods("POST")
	router.HandleFunc("/api/checkout", h.metricsMiddleware("/api/checkout", h.Checkout)).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *StorefrontHandler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		stats := h.statsHandler.Handle(r.Context(), catalogquery.GetStatsQuery{})
		if stats.TotalProducts == 0 {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Catalog not loaded",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Storefront service is healthy",
			Data: map[string]interface{}{
				"products": stats.TotalProducts,
			},
		})
	}).Methods("GET")
}

// observeCart refreshes the cart gauges from a view
func (h *StorefrontHandler) observeCart(view *cartquery.CartView) {
	h.cartItems.Set(float64(view.ItemCount))
	h.cartValue.Set(view.Total.InexactFloat64())
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	var validationErr *catalog.ValidationError
	switch {
	case errors.Is(err, cartdomain.ErrInvalidSelection), errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrProductNotFound), errors.Is(err, cartdomain.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, cartdomain.ErrEmptyCart):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
