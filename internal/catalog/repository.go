package catalog

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("product price must not be negative")
)

// ProductRepository is the catalog's in-memory record set. Products are listed
// in creation order.
type ProductRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.Product
	order []string
}

func NewProductRepository(seed ...domain.Product) *ProductRepository {
	r := &ProductRepository{byID: make(map[string]domain.Product, len(seed))}
	for _, p := range seed {
		r.byID[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

// DefaultProducts is the starter catalog loaded by the products service.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Laptop", Description: "Gaming Laptop", Price: decimal.NewFromInt(1200)},
		{ID: "2", Name: "Smartphone", Description: "Android Phone", Price: decimal.NewFromInt(800)},
	}
}

func (r *ProductRepository) Create(name, description string, price decimal.Decimal) (domain.Product, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Product{}, ErrEmptyName
	}
	if price.IsNegative() {
		return domain.Product{}, ErrNegativePrice
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	for _, taken := r.byID[id]; taken; _, taken = r.byID[id] {
		id = uuid.NewString()
	}

	product := domain.Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
	}
	r.byID[id] = product
	r.order = append(r.order, id)

	return product, nil
}

func (r *ProductRepository) Get(id string) (domain.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	return p, ok
}

func (r *ProductRepository) List() []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.byID[id])
	}
	return products
}
