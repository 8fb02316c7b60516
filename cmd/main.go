package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"platform-adapter-service/internal/adapter"
	"platform-adapter-service/internal/api"
	"platform-adapter-service/internal/attribute"
	"platform-adapter-service/internal/category"
	"platform-adapter-service/internal/config"
	"platform-adapter-service/internal/fieldmap"
	"platform-adapter-service/internal/logger"
	"platform-adapter-service/internal/metrics"
	"platform-adapter-service/internal/platform"
	"platform-adapter-service/internal/store"
)

const defaultAppName = "platform-adapter-service"

// categoryBackend is the wired category store plus the optional surfaces it offers.
type categoryBackend struct {
	storer   store.CategoryMappingStorer
	reviewer store.CategoryMappingReviewer
	pinger   api.Pinger
	closer   io.Closer
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "INFO: .env file not found, relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.ForEnvironment(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("service", defaultAppName))
	log.Info("Starting service",
		zap.String("app_env", cfg.AppEnv),
		zap.String("category_store", cfg.Adapter.CategoryStore))

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// --- Field mappings ---
	fields := fieldmap.Default()
	if cfg.Adapter.MappingsFile != "" {
		overrides, err := fieldmap.LoadOverrides(cfg.Adapter.MappingsFile)
		if err != nil {
			log.Fatal("Failed to load field mapping overrides", zap.Error(err))
		}
		fields = fields.WithOverrides(overrides)
		log.Info("Field mapping overrides loaded",
			zap.String("file", cfg.Adapter.MappingsFile),
			zap.Int("platforms", len(overrides)))
	}

	// --- Category store ---
	backend, err := openCategoryBackend(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("Failed to open category store", zap.Error(err))
	}

	platforms := platform.Default()
	categoryOpts := []category.Option{
		category.WithTimeout(cfg.Adapter.PersistenceTimeout),
		category.WithLogger(log.Named("category")),
		category.WithRecorder(m),
	}
	if backend.storer != nil {
		m.SetStoreBreakerState(cfg.Adapter.CategoryStore, 0)
		categoryOpts = append(categoryOpts, category.WithStore(store.NewBreakerStore(backend.storer, store.BreakerConfig{
			Name:          cfg.Adapter.CategoryStore,
			MaxFailures:   cfg.Adapter.BreakerMaxFailures,
			Timeout:       cfg.Adapter.BreakerTimeout,
			OnStateChange: m.SetStoreBreakerState,
		}, log)))
	}

	service := api.NewService(platforms, adapter.Deps{
		Fields:     fields,
		Attributes: attribute.Default(),
		Categories: category.NewMapper(platforms, categoryOpts...),
		Recorder:   m,
	})

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter, log, m, cfg.HttpServer.RequestTimeout)
	httpRouter.Handle("/metrics", metrics.HandlerFor(registry))
	api.NewHTTPHandler(service, backend.reviewer, backend.pinger, log.Named("http")).RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("port", cfg.HttpServer.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server ListenAndServe error", zap.Error(err))
		}
		log.Info("HTTP server has stopped")
	}()

	// --- Setup & Start gRPC Server ---
	grpcServer := setupGRPCServer(log, api.NewGRPCHandler(service, log.Named("grpc")))
	grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcServer.Port)
	if err != nil {
		log.Fatal("Failed to listen for gRPC", zap.String("port", cfg.GrpcServer.Port), zap.Error(err))
	}

	go func() {
		log.Info("gRPC server listening", zap.String("port", cfg.GrpcServer.Port))
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Fatal("gRPC server Serve error", zap.Error(err))
		}
		log.Info("gRPC server has stopped")
	}()

	// --- Graceful Shutdown ---
	shutdownComplete := make(chan struct{})
	go waitForShutdown(log, httpServer, grpcServer, backend.closer, shutdownComplete)

	<-shutdownComplete
	log.Info("Service shutdown sequence finished")
}

func openCategoryBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (categoryBackend, error) {
	switch cfg.Adapter.CategoryStore {
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.Postgres.DSN())
		if err != nil {
			return categoryBackend{}, fmt.Errorf("failed to initialize database connection: %w", err)
		}
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return categoryBackend{}, fmt.Errorf("failed to ping database: %w", err)
		}
		if cfg.Adapter.AutoMigrate {
			if err := store.Migrate(db, log.Named("migrate")); err != nil {
				_ = db.Close()
				return categoryBackend{}, err
			}
		}
		log.Info("Database connection established")

		pg := store.NewPostgresStore(db)
		return categoryBackend{storer: pg, reviewer: pg, pinger: pg, closer: pg}, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rs := store.NewRedisStore(client, cfg.Redis.KeyPrefix)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rs.Ping(pingCtx); err != nil {
			_ = rs.Close()
			return categoryBackend{}, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("Redis connection established", zap.String("addr", cfg.Redis.Addr))
		return categoryBackend{storer: rs, pinger: rs, closer: rs}, nil

	default:
		log.Info("No category store configured; category resolution is computed only")
		return categoryBackend{}, nil
	}
}

func setupBaseMiddleware(router *chi.Mux, log *zap.Logger, m *metrics.Metrics, timeout time.Duration) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.HTTPMiddleware(log.Named("access")))
	router.Use(middleware.Recoverer)
	router.Use(m.Middleware)
	router.Use(middleware.Timeout(timeout))
}

func setupGRPCServer(log *zap.Logger, handler *api.GRPCHandler) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		api.UserIDUnaryInterceptor,
		api.LoggingUnaryInterceptor(log.Named("grpc")),
	))

	api.RegisterProductAdapterServer(s, handler)
	grpc_health_v1.RegisterHealthServer(s, health.NewServer())
	reflection.Register(s)
	log.Info("gRPC services registered", zap.String("service", api.ProductAdapterServiceName))
	return s
}

func waitForShutdown(
	log *zap.Logger,
	httpServer *http.Server,
	grpcServer *grpc.Server,
	storeCloser io.Closer,
	shutdownComplete chan struct{},
) {
	defer close(shutdownComplete)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	receivedSignal := <-sigChan
	log.Info("Received signal, starting graceful shutdown", zap.String("signal", receivedSignal.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	stoppedGrpc := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stoppedGrpc)
	}()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server graceful shutdown failed", zap.Error(err))
	} else {
		log.Info("HTTP server gracefully shut down")
	}

	select {
	case <-stoppedGrpc:
		log.Info("gRPC server gracefully shut down")
	case <-shutdownCtx.Done():
		log.Warn("gRPC server graceful shutdown timed out, forcing stop", zap.Error(shutdownCtx.Err()))
		grpcServer.Stop()
	}

	if storeCloser != nil {
		if err := storeCloser.Close(); err != nil {
			log.Warn("Error closing category store", zap.Error(err))
		}
	}

	log.Info("Graceful shutdown sequence completed")
}
