package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carpentry/backend/internal/bootstrap"
	"github.com/carpentry/backend/internal/infrastructure/archive"
	"github.com/carpentry/backend/internal/infrastructure/auth"
	"github.com/carpentry/backend/internal/infrastructure/config"
	"github.com/carpentry/backend/internal/infrastructure/event"
	"github.com/carpentry/backend/internal/infrastructure/logger"
	"github.com/carpentry/backend/internal/infrastructure/storage"
	"github.com/carpentry/backend/internal/infrastructure/telemetry"
	"github.com/carpentry/backend/internal/interfaces/http/handler"
	"github.com/carpentry/backend/internal/interfaces/http/middleware"
	"github.com/carpentry/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting carpentry backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Repositories: in-memory store or SQL through gorm
	var plugins []gorm.Plugin
	if tp.IsEnabled() && cfg.Telemetry.DBTraceEnabled {
		dbSystem := "postgresql"
		if cfg.Database.Driver == "sqlite" {
			dbSystem = "sqlite"
		}
		plugins = append(plugins, telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			DBSystem:   dbSystem,
			LogFullSQL: !cfg.IsProduction(),
		}, log))
	}
	repos, err := bootstrap.OpenRepositories(cfg, log, plugins...)
	if err != nil {
		log.Fatal("Failed to open repositories", zap.Error(err))
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	locker, redisClient, err := bootstrap.NewLocker(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize locker", zap.Error(err))
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	documentStorage, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize document storage", zap.Error(err))
	}

	services := bootstrap.NewServices(repos, locker, documentStorage, log)

	// Event bus: audit log plus the optional archive projection
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingHandler(log))

	var archiveReader handler.ArchiveReader
	if cfg.Dynamo.Enabled {
		client, err := archive.NewDynamoClient(ctx, cfg.Dynamo)
		if err != nil {
			log.Fatal("Failed to create DynamoDB client", zap.Error(err))
		}
		store := archive.NewDynamoStore(client, cfg.Dynamo.Table, log)
		if err := store.EnsureTable(ctx); err != nil {
			log.Fatal("Failed to prepare archive table", zap.Error(err))
		}
		eventBus.Subscribe(archive.NewProjection(repos.WorkOrders, store, log))
		archiveReader = store
		log.Info("Archive projection enabled", zap.String("table", cfg.Dynamo.Table))
	}

	services.SetEventPublisher(eventBus)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// HTTP
	engine, err := router.NewEngine(router.EngineConfig{
		HTTP:        cfg.HTTP,
		ServiceName: cfg.Telemetry.ServiceName,
		Tracing:     tp.IsEnabled(),
		Logger:      log,
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	identity := middleware.Identity(middleware.IdentityConfig{
		Tokens:          auth.NewJWTService(cfg.JWT),
		DefaultTenantID: cfg.App.DefaultTenantID,
		Logger:          log,
	})

	registrars := []router.RouteRegistrar{
		handler.NewRequestHandler(services.Requests),
		handler.NewWorkOrderHandler(services.Lifecycle, services.Payments, archiveReader),
		handler.NewFinanceHandler(services.Suppliers, services.Ledger, services.Reconciliation),
		handler.NewWorkforceHandler(services.Workforce),
		handler.NewOverviewHandler(services.Overview),
	}
	if services.Documents != nil {
		registrars = append(registrars, handler.NewDocumentHandler(services.Documents))
	}
	router.NewRouter(engine, router.WithMiddleware(identity)).Register(registrars...).Setup()
	handler.NewSystemHandler(cfg.App.Name, version, repos).Register(engine)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
