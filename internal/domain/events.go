package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrdersTopic = "orders_topic"

// OrderCreatedEvent is the snapshot of an order published right after it was stored.
type OrderCreatedEvent struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	ProductIDs []string        `json:"productIds"`
	Total      decimal.Decimal `json:"total"`
	Status     OrderStatus     `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func NewOrderCreatedEvent(o Order) OrderCreatedEvent {
	ids := make([]string, len(o.ProductIDs))
	copy(ids, o.ProductIDs)
	return OrderCreatedEvent{
		ID:         o.ID,
		UserID:     o.UserID,
		ProductIDs: ids,
		Total:      o.Total,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
	}
}
