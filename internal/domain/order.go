package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices and totals go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// UnitRate is the flat price charged per product line until a pricing lookup exists.
var UnitRate = decimal.NewFromInt(100)

type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	ProductIDs []string        `json:"productIds"`
	Total      decimal.Decimal `json:"total"`
	Status     OrderStatus     `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// OrderTotal prices an order from its product references. Duplicates count once each.
func OrderTotal(productIDs []string) decimal.Decimal {
	return UnitRate.Mul(decimal.NewFromInt(int64(len(productIDs))))
}
