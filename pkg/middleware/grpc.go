package middleware

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-intake-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const RequestIDHeader = "x-request-id"

// RequestID returns the caller supplied request id, or "".
func RequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if val := md.Get(RequestIDHeader); len(val) > 0 {
		return val[0]
	}
	return ""
}

// LoggingInterceptor logs one line per unary call with its method, code and latency.
func LoggingInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("latency", time.Since(start)),
		}
		if id := RequestID(ctx); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if err != nil {
			log.Warn("grpc request failed", append(fields, zap.Error(err))...)
		} else {
			log.Info("grpc request", fields...)
		}
		return resp, err
	}
}
