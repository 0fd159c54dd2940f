package orders

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/rpc"
)

var _ rpc.OrderServiceServer = (*Server)(nil)

type Server struct {
	orchestrator *Orchestrator
	logger       *slog.Logger
}

func NewServer(orchestrator *Orchestrator, logger *slog.Logger) *Server {
	return &Server{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

func (s *Server) CreateOrder(ctx context.Context, req *rpc.CreateOrderRequest) (*domain.Order, error) {
	order, err := s.orchestrator.CreateOrder(ctx, req.UserID, req.ProductIDs)
	if err != nil {
		if errors.Is(err, ErrDuplicateID) {
			return nil, status.Error(codes.AlreadyExists, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "create order: %v", err)
	}
	return &order, nil
}

func (s *Server) GetOrder(ctx context.Context, req *rpc.GetOrderRequest) (*rpc.GetOrderResponse, error) {
	order, ok := s.orchestrator.GetOrder(req.ID)
	if !ok {
		s.logger.InfoContext(ctx, "order not found", "order_id", req.ID)
		return &rpc.GetOrderResponse{}, nil
	}
	return &rpc.GetOrderResponse{Order: order}, nil
}

func (s *Server) ListOrdersByUser(ctx context.Context, req *rpc.ListOrdersByUserRequest) (*rpc.ListOrdersResponse, error) {
	orders := s.orchestrator.ListOrdersByUser(req.UserID)
	s.logger.InfoContext(ctx, "orders listed", "user_id", req.UserID, "count", len(orders))
	return &rpc.ListOrdersResponse{Orders: orders}, nil
}
