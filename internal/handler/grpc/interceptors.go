package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// withLogging logs every unary call with a fresh trace id and puts the
// request-scoped logger into the handler context.
func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	log := h.logger.With().
		Str("trace_id", utils.NewTraceID()).
		Str("method", info.FullMethod).
		Logger()
	ctx = log.WithContext(ctx)

	resp, err := handler(ctx, req)

	event := log.Info()
	if err != nil {
		event = log.Warn().Err(err)
	}
	event.
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}
