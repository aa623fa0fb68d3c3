package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-intake-service/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestRequestID(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "req-1"))
	if got := RequestID(ctx); got != "req-1" {
		t.Fatalf("expected req-1, got %q", got)
	}
}

func TestLoggingInterceptorPassesThrough(t *testing.T) {
	intercept := LoggingInterceptor(logger.NewNop())
	info := &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}

	resp, err := intercept(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	if err != nil || resp != "ok" {
		t.Fatalf("unexpected result %v %v", resp, err)
	}

	want := status.Error(codes.NotFound, "missing")
	_, err = intercept(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected handler error, got %v", err)
	}
}
