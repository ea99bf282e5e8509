package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/logger"
)

type httpServer struct {
	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

// newHTTPServer binds cfg.HTTPAddress right away so that a busy port fails
// startup instead of the serving goroutine.
func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) (*httpServer, error) {
	listener, err := net.Listen("tcp", cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", cfg.HTTPAddress, err)
	}

	return &httpServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: cfg.RequestTimeout,
		},
		listener: listener,
		logger:   logger,
	}, nil
}

func (h *httpServer) RunServer() error {
	h.logger.Info().Str("address", h.listener.Addr().String()).Msg("HTTP server listening")

	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server Serve: %w", err)
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	h.logger.Info().Msg("HTTP server Shutdown")

	if err := h.server.Shutdown(ctx); err != nil {
		_ = h.server.Close()
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}
	return nil
}
