package catalog

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/rpc"
)

var _ rpc.ProductServiceServer = (*Server)(nil)

type Server struct {
	repo   *ProductRepository
	logger *slog.Logger
}

func NewServer(repo *ProductRepository, logger *slog.Logger) *Server {
	return &Server{
		repo:   repo,
		logger: logger,
	}
}

func (s *Server) CreateProduct(ctx context.Context, req *rpc.CreateProductRequest) (*domain.Product, error) {
	product, err := s.repo.Create(req.Name, req.Description, req.Price)
	if err != nil {
		if errors.Is(err, ErrEmptyName) || errors.Is(err, ErrNegativePrice) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "create product: %v", err)
	}

	s.logger.InfoContext(ctx, "product created", "product_id", product.ID, "name", product.Name)
	return &product, nil
}

func (s *Server) GetProduct(ctx context.Context, req *rpc.GetProductRequest) (*rpc.GetProductResponse, error) {
	product, ok := s.repo.Get(req.ID)
	if !ok {
		s.logger.InfoContext(ctx, "product not found", "product_id", req.ID)
		return &rpc.GetProductResponse{}, nil
	}
	return &rpc.GetProductResponse{Product: &product}, nil
}

func (s *Server) ListProducts(ctx context.Context, _ *rpc.ListProductsRequest) (*rpc.ListProductsResponse, error) {
	products := s.repo.List()
	s.logger.InfoContext(ctx, "products listed", "count", len(products))
	return &rpc.ListProductsResponse{Products: products}, nil
}
