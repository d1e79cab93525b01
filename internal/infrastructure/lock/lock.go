// Package lock serializes mutations of one aggregate. LocalLocker covers a
// single process; RedisLocker extends the guarantee across instances.
package lock

import (
	"fmt"

	"github.com/carpentry/backend/internal/domain/shared"
	"github.com/carpentry/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// ErrLockBusy is returned when a key stays held past the wait budget
var ErrLockBusy = shared.NewDomainError(shared.CodeConcurrencyConflict, "Resource is being modified, retry shortly")

// New builds the locker selected by cfg.Driver; client is only used by the redis driver
func New(cfg config.LockConfig, client redis.UniversalClient) (shared.Locker, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalLocker(), nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis lock driver requires a redis client")
		}
		return NewRedisLocker(client, cfg), nil
	default:
		return nil, fmt.Errorf("unsupported lock driver %q", cfg.Driver)
	}
}
