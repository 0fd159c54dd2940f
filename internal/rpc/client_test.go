package rpc_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/rpc"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/rpc/rpctest"
)

type stubProductServer struct {
	mu        sync.Mutex
	products  map[string]domain.Product
	requestID string
	delay     time.Duration
}

func (s *stubProductServer) CreateProduct(ctx context.Context, req *rpc.CreateProductRequest) (*domain.Product, error) {
	if req.Price.IsNegative() {
		return nil, status.Error(codes.InvalidArgument, "price must not be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requestID = rpc.RequestIDFromContext(ctx)
	p := domain.Product{ID: "p-1", Name: req.Name, Description: req.Description, Price: req.Price}
	s.products[p.ID] = p
	return &p, nil
}

func (s *stubProductServer) GetProduct(ctx context.Context, req *rpc.GetProductRequest) (*rpc.GetProductResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[req.ID]
	if !ok {
		return &rpc.GetProductResponse{}, nil
	}
	return &rpc.GetProductResponse{Product: &p}, nil
}

func (s *stubProductServer) ListProducts(ctx context.Context, _ *rpc.ListProductsRequest) (*rpc.ListProductsResponse, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, status.FromContextError(ctx.Err()).Err()
		}
	}
	return &rpc.ListProductsResponse{}, nil
}

func newProductClient(t *testing.T, srv *stubProductServer) *rpc.ProductClient {
	conn := rpctest.Serve(t, func(s *grpc.Server) {
		rpc.RegisterProductServiceServer(s, srv)
	})
	return rpc.NewProductClient(conn)
}

func TestProductClient(t *testing.T) {
	t.Run("round trips a product through the json codec", func(t *testing.T) {
		client := newProductClient(t, &stubProductServer{products: map[string]domain.Product{}})

		created, err := client.CreateProduct(context.Background(), "Laptop", "Gaming Laptop", decimal.NewFromInt(1200))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID != "p-1" || created.Name != "Laptop" || !created.Price.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("unexpected product: %+v", created)
		}

		got, err := client.GetProduct(context.Background(), "p-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.Description != "Gaming Laptop" {
			t.Errorf("unexpected product: %+v", got)
		}
	})

	t.Run("unknown id is nil without error", func(t *testing.T) {
		client := newProductClient(t, &stubProductServer{products: map[string]domain.Product{}})

		got, err := client.GetProduct(context.Background(), "missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil product, got %+v", got)
		}
	})

	t.Run("empty list is a non-nil slice", func(t *testing.T) {
		client := newProductClient(t, &stubProductServer{products: map[string]domain.Product{}})

		got, err := client.ListProducts(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty slice, got %#v", got)
		}
	})

	t.Run("keeps the status code through error wrapping", func(t *testing.T) {
		client := newProductClient(t, &stubProductServer{products: map[string]domain.Product{}})

		_, err := client.CreateProduct(context.Background(), "Broken", "", decimal.NewFromInt(-1))
		if status.Code(err) != codes.InvalidArgument {
			t.Errorf("expected InvalidArgument, got %v", err)
		}
	})

	t.Run("propagates the request id", func(t *testing.T) {
		srv := &stubProductServer{products: map[string]domain.Product{}}
		client := newProductClient(t, srv)

		ctx := rpc.WithRequestID(context.Background(), "req-42")
		if _, err := client.CreateProduct(ctx, "Laptop", "", decimal.NewFromInt(1)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		srv.mu.Lock()
		defer srv.mu.Unlock()
		if srv.requestID != "req-42" {
			t.Errorf("expected request id req-42, got %q", srv.requestID)
		}
	})

	t.Run("applies the default call timeout", func(t *testing.T) {
		client := newProductClient(t, &stubProductServer{products: map[string]domain.Product{}, delay: 10 * time.Second})

		start := time.Now()
		_, err := client.ListProducts(context.Background())
		if status.Code(err) != codes.DeadlineExceeded {
			t.Fatalf("expected DeadlineExceeded, got %v", err)
		}
		if elapsed := time.Since(start); elapsed > 5*time.Second {
			t.Errorf("call was not bounded by the client timeout, took %s", elapsed)
		}
	})
}
