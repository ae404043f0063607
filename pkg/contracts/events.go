package contracts

import "time"

type Event struct {
	EventID   string         `json:"event_id"`
	UserID    string         `json:"user_id,omitempty"`
	OrderID   string         `json:"order_id,omitempty"`
	ProductID string         `json:"product_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
}

const (
	EventOrderPlaced      = "order.placed"
	EventOrderCompensated = "order.compensated"
	EventStockLow         = "stock.low"
	EventProductUpdated   = "product.updated"
	EventProductDeleted   = "product.deleted"
)
