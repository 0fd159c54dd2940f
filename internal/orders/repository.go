package orders

import (
	"errors"
	"sync"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

var ErrDuplicateID = errors.New("order id already exists")

// OrderRepository keeps orders in memory, in persist order.
type OrderRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.Order
	order []string
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{byID: make(map[string]domain.Order)}
}

func (r *OrderRepository) Create(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[order.ID]; exists {
		return ErrDuplicateID
	}
	order.ProductIDs = cloneIDs(order.ProductIDs)
	r.byID[order.ID] = order
	r.order = append(r.order, order.ID)
	return nil
}

func (r *OrderRepository) Get(id string) (domain.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return domain.Order{}, false
	}
	o.ProductIDs = cloneIDs(o.ProductIDs)
	return o, true
}

func (r *OrderRepository) ListByUser(userID string) []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []domain.Order{}
	for _, id := range r.order {
		o := r.byID[id]
		if o.UserID != userID {
			continue
		}
		o.ProductIDs = cloneIDs(o.ProductIDs)
		orders = append(orders, o)
	}
	return orders
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
