package grpc

import (
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-checked service name reported next to the
// overall ("") server status.
const ServiceName = "go-disk-next"

// Handler is the root gRPC transport handler. It exposes the standard
// grpc.health.v1 service so orchestrators can probe the process.
//
// A handler is created after the database is migrated and bootstrapped, so
// it starts in the SERVING state.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] reporting SERVING for both the whole
// server and [ServiceName].
func NewHandler(logger *logger.Logger) *Handler {
	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// ServerOptions returns the options the gRPC server must be created with.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.withLogging),
	}
}

// Register attaches the handler's services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Drain flips every status to NOT_SERVING so probes fail while in-flight
// calls finish. Watchers are not closed.
func (h *Handler) Drain() {
	h.logger.Info().Msg("gRPC health set to NOT_SERVING")
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
}
