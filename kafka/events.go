package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is one purchased cart line inside an order event
type OrderLine struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderCompletedEvent is emitted when the storefront checkout completes
type OrderCompletedEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	OrderID   string          `json:"order_id"`
	Lines     []OrderLine     `json:"lines"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	Timestamp time.Time       `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderCompleted = "order.completed"
)

// Kafka topics
const (
	TopicOrderCompleted = "storefront-orders"
)
