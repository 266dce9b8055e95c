package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/cart/store"
	"github.com/tair/storefront/internal/catalog/imageref"
	"github.com/tair/storefront/internal/catalog/repository"
	"github.com/tair/storefront/internal/catalog/seed"
	"github.com/tair/storefront/kafka"
)

type recordingPublisher struct {
	events []kafka.OrderCompletedEvent
}

func (p *recordingPublisher) PublishOrderCompleted(_ context.Context, event kafka.OrderCompletedEvent) error {
	p.events = append(p.events, event)
	return nil
}

type testServer struct {
	handler   *StorefrontHandler
	router    *mux.Router
	cart      *store.MemoryStore
	publisher *recordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	defs, err := seed.Default()
	require.NoError(t, err)
	images := imageref.NewUnsplashProvider(0, 0)
	repo := repository.NewMemoryProductRepository(images)
	require.NoError(t, repo.Load(defs))

	cart := store.NewMemoryStore()
	pub := &recordingPublisher{}
	h, err := NewStorefrontHandler(repo, cart, pub, images, prometheus.NewRegistry())
	require.NoError(t, err)

	router := mux.NewRouter()
	RegisterMiddlewares(router, DefaultMiddlewareConfig())
	h.RegisterRoutes(router)
	h.RegisterHealthCheck(router)

	return &testServer{handler: h, router: router, cart: cart, publisher: pub}
}

func (s *testServer) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp Response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func metricValue(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	switch {
	case m.Gauge != nil:
		return m.Gauge.GetValue()
	case m.Counter != nil:
		return m.Counter.GetValue()
	}
	t.Fatalf("unsupported metric %v", c.Desc())
	return 0
}

func dataMap(t *testing.T, resp Response) map[string]interface{} {
	t.Helper()
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", resp.Data)
	return m
}

func TestListProducts(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.EqualValues(t, 18, dataMap(t, resp)["total"])

	_, resp = s.do(t, http.MethodGet, "/api/products?category=Blazers", "")
	products := dataMap(t, resp)["products"].([]interface{})
	require.Len(t, products, 3)
	assert.Equal(t, "Navy Blazer", products[0].(map[string]interface{})["name"])

	_, resp = s.do(t, http.MethodGet, "/api/products?category=all&q=MERINO", "")
	assert.EqualValues(t, 2, dataMap(t, resp)["total"])

	_, resp = s.do(t, http.MethodGet, "/api/products?category=Accessories&q=blazer", "")
	assert.EqualValues(t, 0, dataMap(t, resp)["total"])
}

func TestGetProduct(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/api/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	product := dataMap(t, resp)
	assert.Equal(t, "Classic Fit Polo", product["name"])
	assert.EqualValues(t, 28, product["discount_percent"])
	assert.Contains(t, product["image_url"], "source.unsplash.com")

	rec, _ = s.do(t, http.MethodGet, "/api/products/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsAndCategories(t *testing.T) {
	s := newTestServer(t)

	_, resp := s.do(t, http.MethodGet, "/api/products/stats", "")
	stats := dataMap(t, resp)
	assert.EqualValues(t, 18, stats["total_products"])
	assert.EqualValues(t, 4, stats["featured_products"])

	_, resp = s.do(t, http.MethodGet, "/api/categories", "")
	categories := dataMap(t, resp)["categories"].([]interface{})
	assert.Equal(t, []interface{}{"Polo Shirts", "Dress Shirts", "Sweaters", "Blazers", "Dresses", "Accessories"}, categories)
}

func TestCartFlow(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodPost, "/api/cart/items", `{"product_id":7,"size":"L","color":"Black"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Added Cable-Knit Sweater to cart", resp.Message)

	rec, _ = s.do(t, http.MethodPost, "/api/cart/items", `{"product_id":7,"size":"L","color":"Black"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	_, resp = s.do(t, http.MethodGet, "/api/cart", "")
	cart := dataMap(t, resp)
	assert.Len(t, cart["lines"], 1)
	assert.EqualValues(t, 2, cart["item_count"])
	assert.Equal(t, "397", cart["total"])
	assert.Equal(t, 2.0, metricValue(t, s.handler.cartItems))
	assert.Equal(t, 397.0, metricValue(t, s.handler.cartValue))

	rec, resp = s.do(t, http.MethodPost, "/api/cart/items/increase", `{"product_id":7,"size":"L","color":"Black"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, dataMap(t, resp)["line"].(map[string]interface{})["quantity"])

	rec, resp = s.do(t, http.MethodPost, "/api/cart/items/decrease", `{"product_id":7,"size":"L","color":"Black"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, dataMap(t, resp)["removed"])

	rec, _ = s.do(t, http.MethodDelete, "/api/cart/items?product_id=7&size=L&color=Black", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.cart.Snapshot().Lines)

	rec, _ = s.do(t, http.MethodPost, "/api/cart/items/increase", `{"product_id":7,"size":"L","color":"Black"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItemDefaultsAndErrors(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodPost, "/api/cart/items", `{"product_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	line := dataMap(t, resp)["line"].(map[string]interface{})
	assert.Equal(t, "M", line["size"])
	assert.Equal(t, "Navy", line["color"])

	rec, _ = s.do(t, http.MethodPost, "/api/cart/items", `{"product_id":1,"size":"XXXL","color":"Navy"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/cart/items", `{"product_id":404}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/cart/items", `{"product_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/cart/items/decrease", `{"product_id":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 1, s.cart.Snapshot().ItemCount)
}

func TestClearCart(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/cart/items", `{"product_id":1}`)
	s.do(t, http.MethodPost, "/api/cart/items", `{"product_id":2}`)

	rec, resp := s.do(t, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cart := dataMap(t, resp)
	assert.EqualValues(t, 0, cart["item_count"])
	assert.Equal(t, "0", cart["total"])
}

func TestCheckout(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodPost, "/api/checkout", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	s.do(t, http.MethodPost, "/api/cart/items", `{"product_id":11,"size":"XL","color":"Grey"}`)
	rec, resp := s.do(t, http.MethodPost, "/api/checkout", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Order completed successfully!", resp.Message)
	order := dataMap(t, resp)
	assert.Regexp(t, `^ORD-`, order["order_id"])
	assert.Equal(t, "545", order["total"])
	assert.EqualValues(t, 1, order["item_count"])

	assert.Empty(t, s.cart.Snapshot().Lines)
	require.Len(t, s.publisher.events, 1)
	assert.Equal(t, 1.0, metricValue(t, s.handler.ordersTotal))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Storefront service is healthy", resp.Message)
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/?category=Sweaters&notice="+url.QueryEscape("Hello there"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Cable-Knit Sweater")
	assert.Contains(t, body, "Cotton Cardigan")
	assert.NotContains(t, body, "Navy Blazer")
	assert.Contains(t, body, "Hello there")
	assert.Contains(t, body, "Your cart is empty")
	assert.Contains(t, body, "-15%")
}

func TestIndexPage_TrimsSearchBox(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/?q="+url.QueryEscape("  scarf "), "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Silk Scarf")
	assert.Contains(t, body, "Wool Scarf")
	assert.NotContains(t, body, "Leather Belt")
}

func postForm(s *testServer, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func noticeOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/", loc.Path)
	return loc.Query().Get("notice")
}

func TestFormFlow(t *testing.T) {
	s := newTestServer(t)
	line := url.Values{"product_id": {"3"}, "size": {"S"}, "color": {"Grey"}, "category": {"Polo Shirts"}}

	rec := postForm(s, "/cart/add", line)
	assert.Equal(t, "Added Big Pony Polo to cart", noticeOf(t, rec))
	loc, _ := url.Parse(rec.Header().Get("Location"))
	assert.Equal(t, "Polo Shirts", loc.Query().Get("category"))

	noticeOf(t, postForm(s, "/cart/increase", line))
	assert.Equal(t, 2, s.cart.Snapshot().ItemCount)

	noticeOf(t, postForm(s, "/cart/decrease", line))
	assert.Equal(t, "Item removed from cart", noticeOf(t, postForm(s, "/cart/decrease", line)))
	assert.Empty(t, s.cart.Snapshot().Lines)

	assert.Equal(t, "Please choose an available color",
		noticeOf(t, postForm(s, "/cart/add", url.Values{"product_id": {"3"}, "size": {"S"}, "color": {"Teal"}})))

	assert.Equal(t, "Your cart is empty", noticeOf(t, postForm(s, "/checkout", url.Values{})))

	postForm(s, "/cart/add", url.Values{"product_id": {"5"}})
	assert.Contains(t, noticeOf(t, postForm(s, "/checkout", url.Values{})), "Order completed successfully!")
	assert.Empty(t, s.cart.Snapshot().Lines)

	postForm(s, "/cart/add", url.Values{"product_id": {"5"}})
	assert.Equal(t, "Cart cleared", noticeOf(t, postForm(s, "/cart/clear", url.Values{})))
	assert.Zero(t, s.cart.Snapshot().ItemCount)

	rec = postForm(s, "/cart/remove", url.Values{"product_id": {"5"}, "size": {"M"}, "color": {"Navy"}})
	assert.Equal(t, "Item removed from cart", noticeOf(t, rec))
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★★☆", stars(4.5))
	assert.Equal(t, "★★★★★", stars(5))
	assert.Equal(t, "☆☆☆☆☆", stars(-1))
}
