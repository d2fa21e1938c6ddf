package grpc_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	internalgrpc "github.com/EgehanKilicarslan/identity-service/internal/grpc"
	"github.com/EgehanKilicarslan/identity-service/internal/logger"
	"github.com/EgehanKilicarslan/identity-service/internal/testutil"
)

func startHealthServer(t *testing.T, checker *testutil.MockHealthChecker) (*internalgrpc.HealthServer, *internalgrpc.Client) {
	t.Helper()

	healthServer := internalgrpc.NewHealthServer(checker, time.Second, logger.Discard())

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := grpc.NewServer()
	healthServer.Register(server)
	go server.Serve(lis)

	client, err := internalgrpc.NewClient(lis.Addr().String())
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		server.Stop()
	})

	return healthServer, client
}

func status(t *testing.T, client *internalgrpc.Client, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()

	resp, err := client.Health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthServer_StartsNotServing(t *testing.T) {
	_, client := startHealthServer(t, new(testutil.MockHealthChecker))

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client, ""))
	assert.Error(t, client.Probe(context.Background(), internalgrpc.ServiceName, time.Second))
}

func TestHealthServer_Refresh(t *testing.T) {
	checker := new(testutil.MockHealthChecker)
	checker.On("Check", mock.Anything).Return(nil).Once()
	checker.On("Check", mock.Anything).Return(errors.New("connection refused")).Once()

	healthServer, client := startHealthServer(t, checker)

	healthServer.Refresh(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, ""))
	assert.NoError(t, client.Probe(context.Background(), internalgrpc.ServiceName, time.Second))

	healthServer.Refresh(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client, internalgrpc.ServiceName))

	checker.AssertExpectations(t)
}

func TestHealthServer_Shutdown(t *testing.T) {
	checker := new(testutil.MockHealthChecker)
	checker.On("Check", mock.Anything).Return(nil)

	healthServer, client := startHealthServer(t, checker)

	healthServer.Refresh(context.Background())
	healthServer.Shutdown()
	healthServer.Refresh(context.Background())

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client, internalgrpc.ServiceName))
}

func TestClient_ProbeUnknownService(t *testing.T) {
	_, client := startHealthServer(t, new(testutil.MockHealthChecker))

	assert.Error(t, client.Probe(context.Background(), "unknown.Service", time.Second))
}
