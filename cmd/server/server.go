package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	skilltreev1alpha1 "github.com/KirkDiggler/skilltree-api/internal/api/skilltree/v1alpha1"
	"github.com/KirkDiggler/skilltree-api/internal/catalog"
	"github.com/KirkDiggler/skilltree-api/internal/config"
	"github.com/KirkDiggler/skilltree-api/internal/handlers/skilltree/v1alpha1"
	"github.com/KirkDiggler/skilltree-api/internal/orchestrators/session"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/clock"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/idgen"
	"github.com/KirkDiggler/skilltree-api/internal/redis"
	progressionsession "github.com/KirkDiggler/skilltree-api/internal/repositories/progression_session"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the skill tree progression gRPC server backed by Redis.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().Int("port", 50051, "gRPC server port")
	if err := v.BindPFlag("server.port", serverCmd.Flags().Lookup("port")); err != nil {
		panic(err)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := redis.NewClient(cfg.Redis.Endpoint, &redis.Options{
		PoolSize:   cfg.Redis.PoolSize,
		MaxRetries: cfg.Redis.MaxRetries,
		UseTLS:     cfg.Redis.UseTLS,
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	err = redis.Ping(pingCtx, client)
	cancelPing()
	if err != nil {
		return err
	}

	handler, err := newHandler(cfg, client)
	if err != nil {
		return err
	}

	srv, healthServer := newGRPCServer(handler)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	slog.Info("gRPC server starting",
		"port", cfg.Server.Port,
		"redis", cfg.Redis.Endpoint,
		"catalog", catalogSource(cfg.Catalog.Path))

	return serve(ctx, srv, healthServer, lis, cfg.Server.ShutdownTimeout)
}

func newLogger(cfg config.LogConfig) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

// newHandler wires the catalog, session store and orchestrator behind the
// progression handler
func newHandler(cfg *config.Config, client redis.Client) (*v1alpha1.Handler, error) {
	skills, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	repo, err := progressionsession.NewRedisRepository(&progressionsession.Config{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session repository: %w", err)
	}

	startingPoints := cfg.Session.StartingSkillPoints
	sessionService, err := session.NewOrchestrator(&session.Config{
		SessionRepo:         repo,
		Catalog:             skills,
		IDGenerator:         idgen.NewUUID("sess"),
		Clock:               clock.New(),
		StartingSkillPoints: &startingPoints,
		SessionTTL:          cfg.Session.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session orchestrator: %w", err)
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create progression handler: %w", err)
	}

	return handler, nil
}

func newGRPCServer(handler skilltreev1alpha1.ProgressionServiceServer) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	skilltreev1alpha1.RegisterProgressionServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(skilltreev1alpha1.ProgressionServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return srv, healthServer
}

// serve runs srv until ctx is done, then drains it within timeout
func serve(ctx context.Context, srv *grpc.Server, healthServer *health.Server, lis net.Listener, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(lis); err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down gRPC server")
		healthServer.Shutdown()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-time.After(timeout):
			slog.Warn("graceful shutdown timeout exceeded, forcing stop", "timeout", timeout)
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}
		return nil
	})

	return g.Wait()
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
