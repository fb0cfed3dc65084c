package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryLogger attaches a request logger with a fresh trace id to the call
// context and writes one access log line per call.
func (h *Handler) UnaryLogger() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		l := h.logger.With().Str("trace_id", uuid.NewString()).Logger()
		resp, err := handler(l.WithContext(ctx), req)

		code := status.Code(err)
		level := zerolog.InfoLevel
		if code != codes.OK {
			level = zerolog.WarnLevel
		}
		l.WithLevel(level).
			Str("method", info.FullMethod).
			Str("code", code.String()).
			Dur("duration", time.Since(start)).
			Msg("grpc call")

		return resp, err
	}
}
