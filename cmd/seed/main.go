package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/carpentry/backend/internal/bootstrap"
	"github.com/carpentry/backend/internal/infrastructure/auth"
	"github.com/carpentry/backend/internal/infrastructure/config"
	"github.com/carpentry/backend/internal/infrastructure/logger"
	"github.com/carpentry/backend/internal/infrastructure/seed"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	var (
		file     string
		tenant   string
		token    bool
		username string
		logLevel string
	)
	flag.StringVar(&file, "file", "fixtures/demo.yaml", "Fixture file to load")
	flag.StringVar(&tenant, "tenant", "", "Tenant to seed (defaults to app.default_tenant_id)")
	flag.BoolVar(&token, "token", false, "Print a bearer token for the tenant and exit without seeding")
	flag.StringVar(&username, "user", "seed", "Username embedded in the printed token")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	tenantID := cfg.App.DefaultTenantID
	if tenant != "" {
		if tenantID, err = uuid.Parse(tenant); err != nil {
			log.Fatal("Invalid tenant id", zap.String("tenant", tenant), zap.Error(err))
		}
	}

	if token {
		signed, expires, err := auth.NewJWTService(cfg.JWT).GenerateToken(auth.Identity{
			TenantID: tenantID,
			UserID:   uuid.New(),
			Username: username,
		})
		if err != nil {
			log.Fatal("Failed to sign token", zap.Error(err))
		}
		log.Info("Token issued", zap.String("tenant_id", tenantID.String()), zap.Time("expires_at", expires))
		fmt.Println(signed)
		return
	}

	if cfg.Database.Driver == "memory" {
		log.Fatal("Seeding the memory driver has no effect; set CARPENTRY_DATABASE_DRIVER to sqlite or postgres")
	}

	fixture, err := seed.LoadFile(file)
	if err != nil {
		log.Fatal("Failed to load fixture", zap.String("file", file), zap.Error(err))
	}

	repos, err := bootstrap.OpenRepositories(cfg, log)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	locker, redisClient, err := bootstrap.NewLocker(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to create locker", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	svc := bootstrap.NewServices(repos, locker, nil, log)

	loader := seed.NewLoader(seed.Services{
		Requests:  svc.Requests,
		Lifecycle: svc.Lifecycle,
		Payments:  svc.Payments,
		Suppliers: svc.Suppliers,
		Ledger:    svc.Ledger,
		Workforce: svc.Workforce,
	}, log)
	sum, err := loader.Apply(ctx, tenantID, fixture)
	if err != nil {
		log.Fatal("Seeding stopped", zap.Any("created", sum), zap.Error(err))
	}
	log.Info("Seeding complete", zap.String("file", file), zap.Any("created", sum))
}
