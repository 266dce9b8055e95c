package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	cartdomain "github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/usecase/command"
	cartquery "github.com/tair/storefront/internal/cart/usecase/query"
	catalog "github.com/tair/storefront/internal/catalog/domain"
	catalogquery "github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageRenderer struct {
	index *template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	index, err := template.New("index.html").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
		"stars": stars,
	}).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse storefront templates: %w", err)
	}
	return &pageRenderer{index: index}, nil
}

// stars renders a rating as five filled or empty stars
func stars(rating float64) string {
	filled := int(math.Floor(rating))
	filled = max(0, min(filled, int(catalog.MaxRating)))
	return strings.Repeat("★", filled) + strings.Repeat("☆", int(catalog.MaxRating)-filled)
}

type categoryLink struct {
	Label  string
	Value  string
	Active bool
}

type productCard struct {
	*catalog.Product
	DiscountPercent int
}

type pageData struct {
	HeroImage  string
	Categories []categoryLink
	Category   string
	Search     string
	Notice     string
	Products   []productCard
	Cart       *cartquery.CartView
}

// Index handles GET / and renders the storefront page
func (h *StorefrontHandler) Index(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		category = string(catalog.CategoryAll)
	}
	search := strings.TrimSpace(r.URL.Query().Get("q"))

	products := h.listHandler.Handle(r.Context(), catalogquery.ListProductsQuery{
		Category: category,
		Search:   search,
	})

	cards := make([]productCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, productCard{Product: p, DiscountPercent: catalog.DiscountPercent(p)})
	}

	links := []categoryLink{{
		Label:  "All",
		Value:  string(catalog.CategoryAll),
		Active: strings.EqualFold(category, string(catalog.CategoryAll)),
	}}
	for _, c := range catalog.Categories {
		links = append(links, categoryLink{Label: string(c), Value: string(c), Active: category == string(c)})
	}

	data := pageData{
		HeroImage:  h.heroImage,
		Categories: links,
		Category:   category,
		Search:     search,
		Notice:     r.URL.Query().Get("notice"),
		Products:   cards,
		Cart:       h.cartView(r),
	}

	var buf bytes.Buffer
	if err := h.page.index.Execute(&buf, data); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to render storefront page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// AddToCartForm handles POST /cart/add
func (h *StorefrontHandler) AddToCartForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, "Invalid form submission")
		return
	}

	id, err := strconv.ParseUint(r.PostForm.Get("product_id"), 10, 32)
	if err != nil {
		h.redirect(w, r, "Product not found")
		return
	}

	res, err := h.addItemHandler.Handle(r.Context(), command.AddItemCommand{
		ProductID: uint(id),
		Size:      r.PostForm.Get("size"),
		Color:     r.PostForm.Get("color"),
	})
	if err != nil {
		logger.Warn(r.Context()).Err(err).Uint64("product_id", id).Msg("Failed to add item to cart")
		h.redirect(w, r, noticeFor(err))
		return
	}

	h.redirect(w, r, res.Notice)
}

// RemoveFromCartForm handles POST /cart/remove
func (h *StorefrontHandler) RemoveFromCartForm(w http.ResponseWriter, r *http.Request) {
	fp, ok := h.formFingerprint(w, r)
	if !ok {
		return
	}

	h.removeHandler.Handle(r.Context(), command.RemoveItemCommand{Fingerprint: fp})
	h.redirect(w, r, "Item removed from cart")
}

// IncreaseForm handles POST /cart/increase
func (h *StorefrontHandler) IncreaseForm(w http.ResponseWriter, r *http.Request) {
	fp, ok := h.formFingerprint(w, r)
	if !ok {
		return
	}

	if _, err := h.increaseHandler.Handle(r.Context(), command.IncreaseQuantityCommand{Fingerprint: fp}); err != nil {
		h.redirect(w, r, noticeFor(err))
		return
	}
	h.redirect(w, r, "")
}

// DecreaseForm handles POST /cart/decrease
func (h *StorefrontHandler) DecreaseForm(w http.ResponseWriter, r *http.Request) {
	fp, ok := h.formFingerprint(w, r)
	if !ok {
		return
	}

	res, err := h.decreaseHandler.Handle(r.Context(), command.DecreaseQuantityCommand{Fingerprint: fp})
	if err != nil {
		h.redirect(w, r, noticeFor(err))
		return
	}
	if res.Removed {
		h.redirect(w, r, "Item removed from cart")
		return
	}
	h.redirect(w, r, "")
}

// ClearCartForm handles POST /cart/clear
func (h *StorefrontHandler) ClearCartForm(w http.ResponseWriter, r *http.Request) {
	h.clearHandler.Handle(r.Context(), command.ClearCartCommand{})
	h.redirect(w, r, "Cart cleared")
}

// CheckoutForm handles POST /checkout
func (h *StorefrontHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkoutHandler.Handle(r.Context(), command.CheckoutCommand{})
	if err != nil {
		h.redirect(w, r, noticeFor(err))
		return
	}

	h.ordersTotal.Inc()
	h.redirect(w, r, fmt.Sprintf("%s Order %s, total %s", order.Message, order.OrderID, "$"+order.Total.StringFixed(2)))
}

func (h *StorefrontHandler) formFingerprint(w http.ResponseWriter, r *http.Request) (cartdomain.Fingerprint, bool) {
	if err := r.ParseForm(); err != nil {
		h.redirect(w, r, "Invalid form submission")
		return cartdomain.Fingerprint{}, false
	}

	id, err := strconv.ParseUint(r.PostForm.Get("product_id"), 10, 32)
	if err != nil {
		h.redirect(w, r, "Item is no longer in your cart")
		return cartdomain.Fingerprint{}, false
	}

	fp, err := lineRequest{
		ProductID: uint(id),
		Size:      r.PostForm.Get("size"),
		Color:     r.PostForm.Get("color"),
	}.fingerprint()
	if err != nil {
		h.redirect(w, r, "Item is no longer in your cart")
		return cartdomain.Fingerprint{}, false
	}
	return fp, true
}

// redirect sends the browser back to the page, keeping the current filter
// and carrying the notice to display.
func (h *StorefrontHandler) redirect(w http.ResponseWriter, r *http.Request, notice string) {
	h.cartView(r)

	values := url.Values{}
	if c := strings.TrimSpace(r.FormValue("category")); c != "" && !strings.EqualFold(c, string(catalog.CategoryAll)) {
		values.Set("category", c)
	}
	if q := r.FormValue("q"); q != "" {
		values.Set("q", q)
	}
	if notice != "" {
		values.Set("notice", notice)
	}

	target := "/"
	if len(values) > 0 {
		target += "?" + values.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// noticeFor turns an error into the message shown on the page
func noticeFor(err error) string {
	var selErr *cartdomain.InvalidSelectionError
	switch {
	case errors.As(err, &selErr):
		return fmt.Sprintf("Please choose an available %s", selErr.Field)
	case errors.Is(err, catalog.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, cartdomain.ErrLineNotFound):
		return "Item is no longer in your cart"
	case errors.Is(err, cartdomain.ErrEmptyCart):
		return "Your cart is empty"
	default:
		return "Something went wrong, please try again"
	}
}
