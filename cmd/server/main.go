package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/EgehanKilicarslan/identity-service/internal/api"
	"github.com/EgehanKilicarslan/identity-service/internal/config"
	"github.com/EgehanKilicarslan/identity-service/internal/database"
	"github.com/EgehanKilicarslan/identity-service/internal/database/repository"
	"github.com/EgehanKilicarslan/identity-service/internal/database/service"
	"github.com/EgehanKilicarslan/identity-service/internal/events"
	internalgrpc "github.com/EgehanKilicarslan/identity-service/internal/grpc"
	"github.com/EgehanKilicarslan/identity-service/internal/handler"
	"github.com/EgehanKilicarslan/identity-service/internal/logger"
	"github.com/EgehanKilicarslan/identity-service/internal/middleware"
	"github.com/EgehanKilicarslan/identity-service/internal/worker"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// `server healthcheck` is used as the container probe
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		os.Exit(probe(cfg))
	}

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting Identity Service...",
		"environment", cfg.AppEnv,
		"http_port", cfg.ApiServicePort,
		"grpc_port", cfg.ApiGrpcPort,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Connect to Database
	db, err := database.ConnectDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	userTypeRepo := repository.NewUserTypeRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)

	// 5. Initialize Rate Limiter
	var rateLimiter middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op rate limiter", "error", err)
		rateLimiter = middleware.NewNoOpRateLimiter(appLogger)
	} else {
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute, appLogger)
	}
	defer rateLimiter.Close()

	// 6. Initialize Services
	identityService := service.NewIdentityService(userRepo, userTypeRepo, restaurantRepo, cfg, appLogger)
	tokenService := service.NewTokenService(cfg)

	// 7. Initialize Handlers & Middleware
	healthChecker := database.NewHealthChecker(db)
	identityHandler := handler.NewIdentityHandler(identityService, tokenService, appLogger)
	healthHandler := handler.NewHealthHandler(healthChecker, cfg.StoreTimeoutDuration(), appLogger)

	var authMiddleware *middleware.AuthMiddleware
	if tokenService != nil {
		authMiddleware = middleware.NewAuthMiddleware(tokenService, appLogger)
	} else {
		appLogger.Info("💡 JWT_SECRET not set, login responses carry no access token")
	}

	r := api.SetupRouter(identityHandler, healthHandler, authMiddleware, rateLimiter, appLogger)

	// 8. Background workers
	pool := worker.NewPool(ctx, appLogger)

	healthServer := internalgrpc.NewHealthServer(healthChecker, cfg.StoreTimeoutDuration(), appLogger)
	healthInterval := time.Duration(cfg.HealthCheckInterval) * time.Second
	if healthInterval <= 0 {
		healthInterval = 10 * time.Second
	}
	pool.Every("health-watcher", healthInterval, healthServer.Refresh)

	if len(cfg.KafkaBrokers) > 0 {
		listener := events.NewReservationListener(events.NewKafkaReader(cfg), appLogger)
		pool.Go("reservation-listener", listener.Run)
		defer listener.Close()
	} else {
		appLogger.Info("💡 KAFKA_BROKERS not set, reservation listener disabled")
	}

	// 9. Start gRPC Server (health)
	grpcServer := grpc.NewServer()
	healthServer.Register(grpcServer)

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.ApiGrpcPort))
	if err != nil {
		appLogger.Error("❌ Failed to listen for gRPC", "error", err)
		os.Exit(1)
	}

	go func() {
		appLogger.Info("🔌 [Go] gRPC Server running...", "port", cfg.ApiGrpcPort)
		if err := grpcServer.Serve(grpcListener); err != nil {
			appLogger.Error("❌ gRPC Server failed", "error", err)
		}
	}()

	// 10. Start HTTP Server
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ApiServicePort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		appLogger.Info("🛑 [Go] Shutdown signal received")
	case err := <-serverErr:
		appLogger.Error("❌ HTTP Server failed", "error", err)
	}

	// 11. Graceful shutdown
	shutdownTimeout := time.Duration(cfg.ShutdownTimeout) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	healthServer.Shutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("❌ HTTP Server shutdown failed", "error", err)
	}
	grpcServer.GracefulStop()
	if err := pool.Shutdown(shutdownTimeout); err != nil {
		appLogger.Warn("⚠️ Background workers did not stop in time", "error", err)
	}

	appLogger.Info("👋 [Go] Identity Service stopped")
}

// probe checks the local gRPC health endpoint and returns a process exit code
func probe(cfg *config.Config) int {
	client, err := internalgrpc.NewClient(fmt.Sprintf("127.0.0.1:%s", cfg.ApiGrpcPort))
	if err != nil {
		fmt.Fprintln(os.Stderr, "healthcheck:", err)
		return 1
	}
	defer client.Close()

	if err := client.Probe(context.Background(), internalgrpc.ServiceName, 3*time.Second); err != nil {
		fmt.Fprintln(os.Stderr, "healthcheck:", err)
		return 1
	}
	return 0
}
