package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	cartdomain "github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/usecase/command"
	"github.com/tair/storefront/internal/cart/usecase/query"
	"github.com/tair/storefront/pkg/logger"
)

var errIncompleteLine = errors.New("product_id, size and color are required")

type lineRequest struct {
	ProductID uint   `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func (req lineRequest) fingerprint() (cartdomain.Fingerprint, error) {
	fp := cartdomain.Fingerprint{
		ProductID: req.ProductID,
		Size:      strings.TrimSpace(req.Size),
		Color:     strings.TrimSpace(req.Color),
	}
	if fp.ProductID == 0 || fp.Size == "" || fp.Color == "" {
		return cartdomain.Fingerprint{}, errIncompleteLine
	}
	return fp, nil
}

// orderView is the checkout response body
type orderView struct {
	OrderID string `json:"order_id"`
	*query.CartView
	PlacedAt string `json:"placed_at"`
}

// cartView reads the cart and refreshes the cart gauges
func (h *StorefrontHandler) cartView(r *http.Request) *query.CartView {
	view := h.getCartHandler.Handle(r.Context(), query.GetCartQuery{})
	h.observeCart(view)
	return view
}

// GetCart handles GET /api/cart
func (h *StorefrontHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    h.cartView(r),
	})
}

// AddItem handles POST /api/cart/items
func (h *StorefrontHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if req.ProductID == 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Product ID is required",
		})
		return
	}

	res, err := h.addItemHandler.Handle(r.Context(), command.AddItemCommand{
		ProductID: req.ProductID,
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		logger.Warn(r.Context()).Err(err).Uint("product_id", req.ProductID).Msg("Failed to add item to cart")
		respondJSON(w, statusFor(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: res.Notice,
		Data: map[string]interface{}{
			"line": query.NewLineView(res.Line),
			"cart": h.cartView(r),
		},
	})
}

// RemoveItem handles DELETE /api/cart/items?product_id=&size=&color=
func (h *StorefrontHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.URL.Query().Get("product_id"), 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	fp, err := lineRequest{
		ProductID: uint(id),
		Size:      r.URL.Query().Get("size"),
		Color:     r.URL.Query().Get("color"),
	}.fingerprint()
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	removed := h.removeHandler.Handle(r.Context(), command.RemoveItemCommand{Fingerprint: fp})

	message := "Item removed from cart"
	if !removed {
		message = "Item was not in cart"
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    h.cartView(r),
	})
}

// IncreaseQuantity handles POST /api/cart/items/increase
func (h *StorefrontHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	fp, ok := decodeFingerprint(w, r)
	if !ok {
		return
	}

	line, err := h.increaseHandler.Handle(r.Context(), command.IncreaseQuantityCommand{Fingerprint: fp})
	if err != nil {
		respondJSON(w, statusFor(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"line": query.NewLineView(line),
			"cart": h.cartView(r),
		},
	})
}

// DecreaseQuantity handles POST /api/cart/items/decrease
func (h *StorefrontHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	fp, ok := decodeFingerprint(w, r)
	if !ok {
		return
	}

	res, err := h.decreaseHandler.Handle(r.Context(), command.DecreaseQuantityCommand{Fingerprint: fp})
	if err != nil {
		respondJSON(w, statusFor(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	data := map[string]interface{}{
		"removed": res.Removed,
		"cart":    h.cartView(r),
	}
	if !res.Removed {
		data["line"] = query.NewLineView(res.Line)
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// ClearCart handles DELETE /api/cart
func (h *StorefrontHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.clearHandler.Handle(r.Context(), command.ClearCartCommand{})

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Cart cleared",
		Data:    h.cartView(r),
	})
}

// Checkout handles POST /api/checkout
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkoutHandler.Handle(r.Context(), command.CheckoutCommand{})
	if err != nil {
		respondJSON(w, statusFor(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.ordersTotal.Inc()
	h.cartView(r)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: order.Message,
		Data: orderView{
			OrderID: order.OrderID,
			CartView: query.NewCartView(cartdomain.Snapshot{
				Lines:     order.Lines,
				Total:     order.Total,
				ItemCount: order.ItemCount,
			}),
			PlacedAt: order.PlacedAt.Format(time.RFC3339),
		},
	})
}

func decodeFingerprint(w http.ResponseWriter, r *http.Request) (cartdomain.Fingerprint, bool) {
	var req lineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return cartdomain.Fingerprint{}, false
	}

	fp, err := req.fingerprint()
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return cartdomain.Fingerprint{}, false
	}
	return fp, true
}
