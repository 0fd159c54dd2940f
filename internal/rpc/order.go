package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

const (
	orderServiceName            = "order.OrderService"
	orderCreateOrderMethod      = "/order.OrderService/CreateOrder"
	orderGetOrderMethod         = "/order.OrderService/GetOrder"
	orderListOrdersByUserMethod = "/order.OrderService/ListOrdersByUser"
)

type CreateOrderRequest struct {
	UserID     string   `json:"userId"`
	ProductIDs []string `json:"productIds"`
}

type GetOrderRequest struct {
	ID string `json:"id"`
}

type GetOrderResponse struct {
	Order *domain.Order `json:"order,omitempty"`
}

type ListOrdersByUserRequest struct {
	UserID string `json:"userId"`
}

type ListOrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}

type OrderServiceServer interface {
	CreateOrder(context.Context, *CreateOrderRequest) (*domain.Order, error)
	GetOrder(context.Context, *GetOrderRequest) (*GetOrderResponse, error)
	ListOrdersByUser(context.Context, *ListOrdersByUserRequest) (*ListOrdersResponse, error)
}

var orderServiceDesc = grpc.ServiceDesc{
	ServiceName: orderServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateOrder", Handler: unary(orderCreateOrderMethod, OrderServiceServer.CreateOrder)},
		{MethodName: "GetOrder", Handler: unary(orderGetOrderMethod, OrderServiceServer.GetOrder)},
		{MethodName: "ListOrdersByUser", Handler: unary(orderListOrdersByUserMethod, OrderServiceServer.ListOrdersByUser)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "order.proto",
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&orderServiceDesc, srv)
}

type OrderClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderClient(cc grpc.ClientConnInterface) *OrderClient {
	return &OrderClient{cc: cc}
}

func (c *OrderClient) CreateOrder(ctx context.Context, userID string, productIDs []string) (domain.Order, error) {
	var out domain.Order
	if err := invoke(ctx, c.cc, orderCreateOrderMethod, &CreateOrderRequest{UserID: userID, ProductIDs: productIDs}, &out); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	return out, nil
}

// GetOrder returns nil, nil when no order has the given id.
func (c *OrderClient) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var out GetOrderResponse
	if err := invoke(ctx, c.cc, orderGetOrderMethod, &GetOrderRequest{ID: id}, &out); err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return out.Order, nil
}

func (c *OrderClient) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var out ListOrdersResponse
	if err := invoke(ctx, c.cc, orderListOrdersByUserMethod, &ListOrdersByUserRequest{UserID: userID}, &out); err != nil {
		return nil, fmt.Errorf("list orders for user %s: %w", userID, err)
	}
	if out.Orders == nil {
		return []domain.Order{}, nil
	}
	return out.Orders, nil
}
