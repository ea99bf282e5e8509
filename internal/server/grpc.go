package server

import (
	"context"
	"fmt"
	"net"

	"github.com/MKhiriev/go-disk-next/internal/config"
	myGRPC "github.com/MKhiriev/go-disk-next/internal/handler/grpc"
	"github.com/MKhiriev/go-disk-next/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", cfg.GRPCAddress, err)
	}

	server := grpc.NewServer(handler.ServerOptions()...)
	handler.Register(server)

	return &grpcServer{
		handler:         handler,
		server:          server,
		gRPCNetListener: listener,
		logger:          logger,
	}, nil
}

func (g *grpcServer) RunServer() error {
	g.logger.Info().Str("address", g.gRPCNetListener.Addr().String()).Msg("gRPC server listening")

	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		return fmt.Errorf("gRPC server Serve: %w", err)
	}
	return nil
}

// Shutdown reports NOT_SERVING, then waits for in-flight calls. When ctx
// expires first the remaining connections are dropped.
func (g *grpcServer) Shutdown(ctx context.Context) error {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.handler.Drain()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		<-stopped
		return fmt.Errorf("gRPC server Shutdown: %w", ctx.Err())
	}
}
