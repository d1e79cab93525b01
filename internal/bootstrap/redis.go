package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/infrastructure/config"
	"github.com/carpentry/backend/internal/infrastructure/lock"
	"github.com/redis/go-redis/v9"
)

// NewLocker builds the configured locker. The returned client is nil unless
// the redis driver is selected; the caller closes it.
func NewLocker(ctx context.Context, cfg *config.Config) (shared.Locker, redis.UniversalClient, error) {
	if cfg.Lock.Driver != "redis" {
		locker, err := lock.New(cfg.Lock, nil)
		return locker, nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr(), err)
	}

	locker, err := lock.New(cfg.Lock, client)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return locker, client, nil
}
