package identity

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/rpc"
)

var _ rpc.UserServiceServer = (*Server)(nil)

type Server struct {
	repo   *UserRepository
	logger *slog.Logger
}

func NewServer(repo *UserRepository, logger *slog.Logger) *Server {
	return &Server{
		repo:   repo,
		logger: logger,
	}
}

func (s *Server) CreateUser(ctx context.Context, req *rpc.CreateUserRequest) (*domain.User, error) {
	user, err := s.repo.Create(req.Name, req.Email)
	if err != nil {
		if errors.Is(err, ErrEmptyName) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "create user: %v", err)
	}

	s.logger.InfoContext(ctx, "user created", "user_id", user.ID)
	return &user, nil
}

func (s *Server) GetUser(ctx context.Context, req *rpc.GetUserRequest) (*rpc.GetUserResponse, error) {
	user, ok := s.repo.Get(req.ID)
	if !ok {
		s.logger.InfoContext(ctx, "user not found", "user_id", req.ID)
		return &rpc.GetUserResponse{}, nil
	}
	return &rpc.GetUserResponse{User: &user}, nil
}

func (s *Server) ListUsers(ctx context.Context, _ *rpc.ListUsersRequest) (*rpc.ListUsersResponse, error) {
	users := s.repo.List()
	s.logger.InfoContext(ctx, "users listed", "count", len(users))
	return &rpc.ListUsersResponse{Users: users}, nil
}
