package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/handler"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/mock"
	"github.com/MKhiriev/go-disk-next/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func newHandlers(t *testing.T, cfg config.Server) *handler.Handlers {
	t.Helper()
	appInfo := mock.NewMockAppInfoService(gomock.NewController(t))
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("3.0.0").AnyTimes()

	handlers, err := handler.NewHandlers(&service.Services{AppInfoService: appInfo}, cfg, logger.Nop())
	require.NoError(t, err)
	return handlers
}

func testConfig() config.Server {
	return config.Server{
		HTTPAddress:     "127.0.0.1:0",
		GRPCAddress:     "127.0.0.1:0",
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

func TestNewServer_NothingConfigured(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_MissingHandler(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())

	assert.ErrorIs(t, err, errMissingHandler)
}

func TestNewServer_PortInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := testConfig()
	cfg.GRPCAddress = ""
	cfg.HTTPAddress = busy.Addr().String()

	_, err = NewServer(newHandlers(t, cfg), cfg, logger.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), busy.Addr().String())
}

func TestServer_RunAndShutdown(t *testing.T) {
	cfg := testConfig()
	srv, err := NewServer(newHandlers(t, cfg), cfg, logger.Nop())
	require.NoError(t, err)

	s := srv.(*server)
	httpAddr := s.httpServer.listener.Addr().String()
	grpcAddr := s.gRPCServer.gRPCNetListener.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.RunServer(ctx) }()

	// HTTP API answers
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/api/site/ping", httpAddr))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == `{"version":"3.0.0"}`
	}, 2*time.Second, 20*time.Millisecond)

	// gRPC health answers
	conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	_, err = net.DialTimeout("tcp", httpAddr, 200*time.Millisecond)
	assert.Error(t, err)
}
