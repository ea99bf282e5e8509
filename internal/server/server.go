package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/handler"
	"github.com/MKhiriev/go-disk-next/internal/logger"
)

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	shutdownTimeout time.Duration

	logger *logger.Logger
}

// NewServer creates and binds a server for every configured address. A
// listener that was already opened is closed when a later one fails.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}

	if cfg.HTTPAddress != "" {
		if handlers.HTTP == nil {
			return nil, fmt.Errorf("http: %w", errMissingHandler)
		}
		httpSrv, err := newHTTPServer(handlers.HTTP.Init(), cfg, logger.Component("http-server"))
		if err != nil {
			return nil, err
		}
		servers.httpServer = httpSrv
	}
	if cfg.GRPCAddress != "" {
		if handlers.GRPC == nil {
			servers.closeListeners()
			return nil, fmt.Errorf("grpc: %w", errMissingHandler)
		}
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger.Component("grpc-server"))
		if err != nil {
			servers.closeListeners()
			return nil, err
		}
		servers.gRPCServer = grpcSrv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer(ctx context.Context) error {
	errs := make(chan error, 2)

	// launch all created servers
	if s.httpServer != nil {
		go func() { errs <- s.httpServer.RunServer() }()
	}
	if s.gRPCServer != nil {
		go func() { errs <- s.gRPCServer.RunServer() }()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop requested, shutting down")
	case runErr = <-errs:
		s.logger.Err(runErr).Msg("transport stopped unexpectedly, shutting down")
	}

	shutdownCtx := context.Background()
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.shutdownTimeout)
		defer cancel()
	}

	if err := s.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, err)
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error

	// finish gRPC first so health probes fail before HTTP stops accepting
	if s.gRPCServer != nil {
		errs = append(errs, s.gRPCServer.Shutdown(ctx))
	}
	if s.httpServer != nil {
		errs = append(errs, s.httpServer.Shutdown(ctx))
	}

	return errors.Join(errs...)
}

func (s *server) closeListeners() {
	if s.httpServer != nil {
		_ = s.httpServer.listener.Close()
	}
}
