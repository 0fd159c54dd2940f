package rpc

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// NewServer builds a gRPC server with tracing and request logging installed.
func NewServer(logger *slog.Logger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(LoggingServerInterceptor(logger)),
	}, opts...)
	return grpc.NewServer(opts...)
}

// LoggingServerInterceptor copies the caller's request id into the handler
// context and logs every call with its outcome.
func LoggingServerInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := RequestIDFromContext(ctx)
		if requestID != "" {
			ctx = context.WithValue(ctx, requestIDKey, requestID)
		}

		start := time.Now()
		resp, err := handler(ctx, req)

		attrs := []any{
			"method", info.FullMethod,
			"request_id", requestID,
			"code", status.Code(err).String(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			logger.ErrorContext(ctx, "rpc failed", append(attrs, "error", err)...)
			return nil, err
		}
		logger.InfoContext(ctx, "rpc handled", attrs...)
		return resp, nil
	}
}
