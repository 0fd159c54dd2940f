package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

const (
	userServiceName      = "user.UserService"
	userCreateUserMethod = "/user.UserService/CreateUser"
	userGetUserMethod    = "/user.UserService/GetUser"
	userListUsersMethod  = "/user.UserService/ListUsers"
)

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserResponse struct {
	User *domain.User `json:"user,omitempty"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []domain.User `json:"users"`
}

type UserServiceServer interface {
	CreateUser(context.Context, *CreateUserRequest) (*domain.User, error)
	GetUser(context.Context, *GetUserRequest) (*GetUserResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
}

var userServiceDesc = grpc.ServiceDesc{
	ServiceName: userServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateUser", Handler: unary(userCreateUserMethod, UserServiceServer.CreateUser)},
		{MethodName: "GetUser", Handler: unary(userGetUserMethod, UserServiceServer.GetUser)},
		{MethodName: "ListUsers", Handler: unary(userListUsersMethod, UserServiceServer.ListUsers)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "user.proto",
}

func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&userServiceDesc, srv)
}

type UserClient struct {
	cc grpc.ClientConnInterface
}

func NewUserClient(cc grpc.ClientConnInterface) *UserClient {
	return &UserClient{cc: cc}
}

func (c *UserClient) CreateUser(ctx context.Context, name, email string) (domain.User, error) {
	var out domain.User
	if err := invoke(ctx, c.cc, userCreateUserMethod, &CreateUserRequest{Name: name, Email: email}, &out); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return out, nil
}

// GetUser returns nil, nil when no user has the given id.
func (c *UserClient) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var out GetUserResponse
	if err := invoke(ctx, c.cc, userGetUserMethod, &GetUserRequest{ID: id}, &out); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return out.User, nil
}

func (c *UserClient) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out ListUsersResponse
	if err := invoke(ctx, c.cc, userListUsersMethod, &ListUsersRequest{}, &out); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if out.Users == nil {
		return []domain.User{}, nil
	}
	return out.Users, nil
}
