package rpc

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// HeaderRequestID is the metadata key carrying the gateway's request id.
const HeaderRequestID = "x-request-id"

type contextKey string

const requestIDKey contextKey = HeaderRequestID

// WithRequestID attaches id to ctx and to the outgoing gRPC metadata.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, requestIDKey, id)
	return metadata.AppendToOutgoingContext(ctx, HeaderRequestID, id)
}

// RequestIDFromContext looks in the context value first, then in incoming metadata.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(HeaderRequestID); len(ids) > 0 {
			return ids[0]
		}
	}
	return ""
}
