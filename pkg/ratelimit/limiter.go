package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/franchisemedia/adengine/pkg/config"
	redisclient "github.com/franchisemedia/adengine/pkg/redis"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter is a fixed-window counter backed by redis, shared across instances.
type Limiter struct {
	redis *redisclient.Client
	cfg   config.RateLimitConfig
}

// New creates a limiter from config. A nil redis client disables limiting.
func New(redis *redisclient.Client, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{redis: redis, cfg: cfg}
}

// Allow checks and consumes one request for the given endpoint/identity pair.
func (l *Limiter) Allow(ctx context.Context, endpoint, identity string) (Result, error) {
	if l == nil || l.redis == nil || !l.cfg.Enabled {
		return Result{Allowed: true, Limit: 0}, nil
	}

	window := l.cfg.Window()
	key := fmt.Sprintf("%s:%s:%s", l.cfg.RedisPrefix, endpoint, identity)

	count, err := l.redis.IncrWithWindow(ctx, key, window)
	if err != nil {
		return Result{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	remaining := l.cfg.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	if int(count) > l.cfg.Limit {
		return Result{
			Allowed:    false,
			Limit:      l.cfg.Limit,
			Remaining:  0,
			RetryAfter: window,
		}, nil
	}

	return Result{Allowed: true, Limit: l.cfg.Limit, Remaining: remaining}, nil
}
