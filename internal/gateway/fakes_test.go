package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/rpc"
)

// fakeBackends is a single in-memory stand-in for all four services.
type fakeBackends struct {
	mu       sync.Mutex
	seq      int
	products []domain.Product
	users    []domain.User
	orders   []domain.Order
	err      error
	calls    int

	lastRequestID string
}

func (f *fakeBackends) next() string {
	f.seq++
	return strconv.Itoa(f.seq)
}

func (f *fakeBackends) enter(ctx context.Context) error {
	f.calls++
	f.lastRequestID = rpc.RequestIDFromContext(ctx)
	return f.err
}

func (f *fakeBackends) CreateProduct(ctx context.Context, name, description string, price decimal.Decimal) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(ctx); err != nil {
		return domain.Product{}, err
	}
	p := domain.Product{ID: f.next(), Name: name, Description: description, Price: price}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeBackends) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeBackends) ListProducts(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	return append([]domain.Product{}, f.products...), nil
}

func (f *fakeBackends) CreateUser(ctx context.Context, name, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(ctx); err != nil {
		return domain.User{}, err
	}
	u := domain.User{ID: f.next(), Name: name, Email: email}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeBackends) GetUser(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeBackends) ListUsers(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	return append([]domain.User{}, f.users...), nil
}

func (f *fakeBackends) CreateOrder(ctx context.Context, userID string, productIDs []string) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(ctx); err != nil {
		return domain.Order{}, err
	}
	o := domain.Order{
		ID:         f.next(),
		UserID:     userID,
		ProductIDs: productIDs,
		Total:      domain.OrderTotal(productIDs),
		Status:     domain.OrderStatusPending,
	}
	f.orders = append(f.orders, o)
	return o, nil
}

func (f *fakeBackends) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	for _, o := range f.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, nil
}

func (f *fakeBackends) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	out := []domain.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeBackends) ProcessPayment(ctx context.Context, orderID string, amount decimal.Decimal, method string) (domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(ctx); err != nil {
		return domain.Payment{}, err
	}
	status := domain.PaymentStatusFailed
	if amount.IsPositive() {
		status = domain.PaymentStatusSuccess
	}
	return domain.Payment{PaymentID: f.next(), OrderID: orderID, Amount: amount, Method: method, Status: status}, nil
}

func newTestRouter(f *fakeBackends) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ops := NewOperations(Backends{Products: f, Users: f, Orders: f, Payments: f})

	schema, err := NewSchema(ops)
	if err != nil {
		panic(err)
	}
	return NewRouter(NewRESTHandler(ops, logger), NewGraphQLHandler(schema, logger))
}
