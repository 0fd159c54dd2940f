// Package rpctest runs gRPC services over an in-memory listener for tests.
package rpctest

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/rpc"
)

const bufSize = 1 << 20

// Serve starts a server with the services added by register and returns a
// client connection to it. Both are closed when the test ends.
func Serve(t *testing.T, register func(s *grpc.Server)) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(bufSize)
	srv := rpc.NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	register(srv)

	go func() {
		_ = srv.Serve(lis)
	}()

	conn, err := rpc.Dial("passthrough:///bufnet", 2*time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	if err != nil {
		t.Fatalf("failed to dial bufconn: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
	})

	return conn
}
