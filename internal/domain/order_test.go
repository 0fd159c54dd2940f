package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOrderTotal(t *testing.T) {
	tests := []struct {
		name       string
		productIDs []string
		want       int64
	}{
		{name: "no products", productIDs: nil, want: 0},
		{name: "single product", productIDs: []string{"p1"}, want: 100},
		{name: "duplicates are counted", productIDs: []string{"p1", "p1", "p2"}, want: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderTotal(tt.productIDs)
			if !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("expected total %d, got %s", tt.want, got)
			}
		})
	}
}

func TestNewOrderCreatedEvent(t *testing.T) {
	order := Order{
		ID:         "order-1",
		UserID:     "user-1",
		ProductIDs: []string{"p1", "p2"},
		Total:      decimal.NewFromInt(200),
		Status:     OrderStatusPending,
		CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	event := NewOrderCreatedEvent(order)
	order.ProductIDs[0] = "mutated"

	if event.ProductIDs[0] != "p1" {
		t.Errorf("event must not share product ids with the order, got %v", event.ProductIDs)
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}

	want := `{"id":"order-1","userId":"user-1","productIds":["p1","p2"],"total":200,"status":"pending","createdAt":"2026-01-02T03:04:05Z"}`
	if string(data) != want {
		t.Errorf("unexpected payload:\n got %s\nwant %s", data, want)
	}
}
