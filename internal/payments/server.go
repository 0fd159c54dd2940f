package payments

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/rpc"
)

var _ rpc.PaymentServiceServer = (*Server)(nil)

type Server struct {
	logger    *slog.Logger
	processed metric.Int64Counter
}

func NewServer(logger *slog.Logger) (*Server, error) {
	processed, err := otel.Meter("payments").Int64Counter("payments.processed",
		metric.WithDescription("Payments evaluated, by outcome."),
	)
	if err != nil {
		return nil, err
	}
	return &Server{
		logger:    logger,
		processed: processed,
	}, nil
}

func (s *Server) ProcessPayment(ctx context.Context, req *rpc.ProcessPaymentRequest) (*domain.Payment, error) {
	payment := &domain.Payment{
		PaymentID: uuid.NewString(),
		OrderID:   req.OrderID,
		Amount:    req.Amount,
		Method:    req.Method,
		Status:    Evaluate(req.Amount),
	}

	s.processed.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(payment.Status))))
	s.logger.InfoContext(ctx, "payment processed",
		"payment_id", payment.PaymentID,
		"order_id", payment.OrderID,
		"status", payment.Status,
	)
	return payment, nil
}
