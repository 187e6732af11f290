package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

// LoginLimiter counts failed logins per key in Redis so the limit holds across
// every API instance. Key format: login:fail:<email>
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

var _ ports.LoginLimiter = (*LoginLimiter)(nil)

func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Allow reports whether key still has attempts left in the current window.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter: %w", err)
	}
	return n < l.maxAttempts, nil
}

// Fail counts one failed attempt. The window starts at the first failure.
// INCR and EXPIRE NX run in one MULTI block, so the counter never exists
// without a TTL, and a key left without one is given the window again.
func (l *LoginLimiter) Fail(ctx context.Context, key string) error {
	k := l.key(key)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("login limiter: %w", err)
	}
	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

func (l *LoginLimiter) key(key string) string {
	return "login:fail:" + key
}
