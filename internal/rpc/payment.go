package rpc

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

const (
	paymentServiceName          = "payment.PaymentService"
	paymentProcessPaymentMethod = "/payment.PaymentService/ProcessPayment"
)

type ProcessPaymentRequest struct {
	OrderID string          `json:"orderId"`
	Amount  decimal.Decimal `json:"amount"`
	Method  string          `json:"method"`
}

type PaymentServiceServer interface {
	ProcessPayment(context.Context, *ProcessPaymentRequest) (*domain.Payment, error)
}

var paymentServiceDesc = grpc.ServiceDesc{
	ServiceName: paymentServiceName,
	HandlerType: (*PaymentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ProcessPayment", Handler: unary(paymentProcessPaymentMethod, PaymentServiceServer.ProcessPayment)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "payment.proto",
}

func RegisterPaymentServiceServer(s grpc.ServiceRegistrar, srv PaymentServiceServer) {
	s.RegisterService(&paymentServiceDesc, srv)
}

type PaymentClient struct {
	cc grpc.ClientConnInterface
}

func NewPaymentClient(cc grpc.ClientConnInterface) *PaymentClient {
	return &PaymentClient{cc: cc}
}

func (c *PaymentClient) ProcessPayment(ctx context.Context, orderID string, amount decimal.Decimal, method string) (domain.Payment, error) {
	in := &ProcessPaymentRequest{OrderID: orderID, Amount: amount, Method: method}
	var out domain.Payment
	if err := invoke(ctx, c.cc, paymentProcessPaymentMethod, in, &out); err != nil {
		return domain.Payment{}, fmt.Errorf("process payment for order %s: %w", orderID, err)
	}
	return out, nil
}
