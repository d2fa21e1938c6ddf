package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/EgehanKilicarslan/identity-service/internal/database"
)

// ServiceName is the name the identity service reports under in grpc.health.v1
const ServiceName = "identity.v1.IdentityService"

// HealthServer publishes store reachability over the standard gRPC health protocol.
// The overall ("") status mirrors ServiceName.
type HealthServer struct {
	server  *health.Server
	checker database.HealthChecker
	timeout time.Duration
	logger  *slog.Logger
}

// NewHealthServer creates a health server that starts out NOT_SERVING until the first Refresh
func NewHealthServer(checker database.HealthChecker, timeout time.Duration, logger *slog.Logger) *HealthServer {
	s := &HealthServer{
		server:  health.NewServer(),
		checker: checker,
		timeout: timeout,
		logger:  logger,
	}
	s.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Register attaches the health service to a gRPC server
func (s *HealthServer) Register(registrar grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(registrar, s.server)
}

// Refresh probes the store and updates the published status
func (s *HealthServer) Refresh(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.checker.Check(ctx); err != nil {
		s.logger.Warn("⚠️ [Health] Store check failed", "error", err)
		s.set(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	s.set(healthpb.HealthCheckResponse_SERVING)
}

// Shutdown reports NOT_SERVING for every service and ignores later updates
func (s *HealthServer) Shutdown() {
	s.server.Shutdown()
}

func (s *HealthServer) set(status healthpb.HealthCheckResponse_ServingStatus) {
	s.server.SetServingStatus("", status)
	s.server.SetServingStatus(ServiceName, status)
}
