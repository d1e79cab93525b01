package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/carpentry/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by someone else is never released by us.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

type redisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLocker takes locks with SET NX PX and releases them with a token check
type RedisLocker struct {
	client     redisClient
	prefix     string
	ttl        time.Duration
	retryDelay time.Duration
	waitTime   time.Duration
}

// NewRedisLocker creates a RedisLocker with the configured timings
func NewRedisLocker(client redisClient, cfg config.LockConfig) *RedisLocker {
	l := &RedisLocker{
		client:     client,
		prefix:     "carpentry:lock:",
		ttl:        cfg.TTL,
		retryDelay: cfg.RetryDelay,
		waitTime:   cfg.WaitTime,
	}
	if l.ttl <= 0 {
		l.ttl = 10 * time.Second
	}
	if l.retryDelay <= 0 {
		l.retryDelay = 50 * time.Millisecond
	}
	if l.waitTime <= 0 {
		l.waitTime = 5 * time.Second
	}
	return l
}

// Lock retries SET NX until it wins, ctx is done or the wait budget runs out
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.waitTime)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return func() { l.release(redisKey, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockBusy
		}

		timer := time.NewTimer(l.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *RedisLocker) release(redisKey, token string) {
	// the request context may already be cancelled when unlock runs
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = l.client.Eval(ctx, releaseScript, []string{redisKey}, token).Err()
}
