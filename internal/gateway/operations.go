package gateway

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

// ProductBackend is the catalog as seen from the gateway. Get methods return
// nil, nil when nothing matches.
type ProductBackend interface {
	CreateProduct(ctx context.Context, name, description string, price decimal.Decimal) (domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type UserBackend interface {
	CreateUser(ctx context.Context, name, email string) (domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type OrderBackend interface {
	CreateOrder(ctx context.Context, userID string, productIDs []string) (domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type PaymentBackend interface {
	ProcessPayment(ctx context.Context, orderID string, amount decimal.Decimal, method string) (domain.Payment, error)
}

type Backends struct {
	Products ProductBackend
	Users    UserBackend
	Orders   OrderBackend
	Payments PaymentBackend
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

type CreateOrderInput struct {
	UserID     string
	ProductIDs []string
}

type CreateUserInput struct {
	Name  string
	Email string
}

type ProcessPaymentInput struct {
	OrderID string
	Amount  decimal.Decimal
	Method  string
}

// Operations is the one table both façades dispatch through. It never retries
// and never publishes; backend errors are returned unchanged.
type Operations struct {
	backends Backends
}

func NewOperations(backends Backends) *Operations {
	return &Operations{backends: backends}
}

func (o *Operations) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	return o.backends.Products.CreateProduct(ctx, in.Name, in.Description, in.Price)
}

func (o *Operations) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return o.backends.Products.ListProducts(ctx)
}

func (o *Operations) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return o.backends.Products.GetProduct(ctx, id)
}

// CreateOrder forwards to the OrderService. The order created event is
// published by the backend's orchestrator, never by the gateway.
func (o *Operations) CreateOrder(ctx context.Context, in CreateOrderInput) (domain.Order, error) {
	productIDs := in.ProductIDs
	if productIDs == nil {
		productIDs = []string{}
	}
	return o.backends.Orders.CreateOrder(ctx, in.UserID, productIDs)
}

func (o *Operations) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return o.backends.Orders.GetOrder(ctx, id)
}

func (o *Operations) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return o.backends.Orders.ListOrdersByUser(ctx, userID)
}

func (o *Operations) CreateUser(ctx context.Context, in CreateUserInput) (domain.User, error) {
	return o.backends.Users.CreateUser(ctx, in.Name, in.Email)
}

func (o *Operations) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return o.backends.Users.GetUser(ctx, id)
}

func (o *Operations) ListUsers(ctx context.Context) ([]domain.User, error) {
	return o.backends.Users.ListUsers(ctx)
}

func (o *Operations) ProcessPayment(ctx context.Context, in ProcessPaymentInput) (domain.Payment, error) {
	return o.backends.Payments.ProcessPayment(ctx, in.OrderID, in.Amount, in.Method)
}
