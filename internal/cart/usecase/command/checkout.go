package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
)

// Currency of every catalog price
const Currency = "USD"

// CheckoutMessage is the notice shown after a completed order
const CheckoutMessage = "Order completed successfully!"

// OrderPublisher announces completed orders
type OrderPublisher interface {
	PublishOrderCompleted(ctx context.Context, event kafka.OrderCompletedEvent) error
}

// CheckoutCommand represents the command to place an order for the cart contents
type CheckoutCommand struct{}

// OrderSummary describes a placed order
type OrderSummary struct {
	OrderID   string
	Lines     []domain.Line
	Total     decimal.Decimal
	ItemCount int
	PlacedAt  time.Time
	Message   string
}

// CheckoutHandler handles checkout command
type CheckoutHandler struct {
	cart      domain.CartRepository
	publisher OrderPublisher
	now       func() time.Time
}

// NewCheckoutHandler creates a new checkout handler. publisher may be nil
// when no broker is configured.
func NewCheckoutHandler(cart domain.CartRepository, publisher OrderPublisher) *CheckoutHandler {
	return &CheckoutHandler{cart: cart, publisher: publisher, now: time.Now}
}

// Handle executes the checkout command. The cart is emptied whether or not
// the order event could be published.
func (h *CheckoutHandler) Handle(ctx context.Context, _ CheckoutCommand) (*OrderSummary, error) {
	snap := h.cart.Drain()
	if len(snap.Lines) == 0 {
		return nil, fmt.Errorf("checkout rejected: %w", domain.ErrEmptyCart)
	}

	order := &OrderSummary{
		OrderID:   fmt.Sprintf("ORD-%s", uuid.New().String()[:8]),
		Lines:     snap.Lines,
		Total:     snap.Total,
		ItemCount: snap.ItemCount,
		PlacedAt:  h.now().UTC(),
		Message:   CheckoutMessage,
	}

	if h.publisher != nil {
		if err := h.publisher.PublishOrderCompleted(ctx, orderEvent(order)); err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("order_id", order.OrderID).
				Msg("Failed to publish order completed event")
		}
	}

	logger.Info(ctx).
		Str("order_id", order.OrderID).
		Int("item_count", order.ItemCount).
		Str("total", order.Total.StringFixed(2)).
		Msg("Order completed")

	return order, nil
}

func orderEvent(order *OrderSummary) kafka.OrderCompletedEvent {
	lines := make([]kafka.OrderLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, kafka.OrderLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
			LineTotal: domain.LineTotal(l),
		})
	}

	return kafka.OrderCompletedEvent{
		EventID:   uuid.NewString(),
		OrderID:   order.OrderID,
		Lines:     lines,
		ItemCount: order.ItemCount,
		Total:     order.Total,
		Currency:  Currency,
		Timestamp: order.PlacedAt,
	}
}
