package rpc

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

const (
	productServiceName         = "product.ProductService"
	productCreateProductMethod = "/product.ProductService/CreateProduct"
	productGetProductMethod    = "/product.ProductService/GetProduct"
	productListProductsMethod  = "/product.ProductService/ListProducts"
)

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

// GetProductResponse carries a nil Product when the id is unknown.
type GetProductResponse struct {
	Product *domain.Product `json:"product,omitempty"`
}

type ListProductsRequest struct{}

type ListProductsResponse struct {
	Products []domain.Product `json:"products"`
}

type ProductServiceServer interface {
	CreateProduct(context.Context, *CreateProductRequest) (*domain.Product, error)
	GetProduct(context.Context, *GetProductRequest) (*GetProductResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
}

var productServiceDesc = grpc.ServiceDesc{
	ServiceName: productServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateProduct", Handler: unary(productCreateProductMethod, ProductServiceServer.CreateProduct)},
		{MethodName: "GetProduct", Handler: unary(productGetProductMethod, ProductServiceServer.GetProduct)},
		{MethodName: "ListProducts", Handler: unary(productListProductsMethod, ProductServiceServer.ListProducts)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "product.proto",
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&productServiceDesc, srv)
}

// ProductClient is the typed client for product.ProductService.
type ProductClient struct {
	cc grpc.ClientConnInterface
}

func NewProductClient(cc grpc.ClientConnInterface) *ProductClient {
	return &ProductClient{cc: cc}
}

func (c *ProductClient) CreateProduct(ctx context.Context, name, description string, price decimal.Decimal) (domain.Product, error) {
	in := &CreateProductRequest{Name: name, Description: description, Price: price}
	var out domain.Product
	if err := invoke(ctx, c.cc, productCreateProductMethod, in, &out); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return out, nil
}

// GetProduct returns nil, nil when no product has the given id.
func (c *ProductClient) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var out GetProductResponse
	if err := invoke(ctx, c.cc, productGetProductMethod, &GetProductRequest{ID: id}, &out); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return out.Product, nil
}

func (c *ProductClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out ListProductsResponse
	if err := invoke(ctx, c.cc, productListProductsMethod, &ListProductsRequest{}, &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if out.Products == nil {
		return []domain.Product{}, nil
	}
	return out.Products, nil
}
