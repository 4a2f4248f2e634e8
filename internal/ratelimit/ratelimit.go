// Package ratelimit counts requests per key in fixed Redis windows.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter allows everything when built without a Redis client.
type Limiter struct {
	r *redis.Client
}

func New(r *redis.Client) *Limiter {
	return &Limiter{r: r}
}

// NewFromAddr returns a disabled limiter for an empty addr.
func NewFromAddr(addr string) *Limiter {
	if addr == "" {
		return New(nil)
	}
	return New(redis.NewClient(&redis.Options{Addr: addr}))
}

func (l *Limiter) Enabled() bool {
	return l != nil && l.r != nil
}

// Allow increments the counter for key in its current window and reports
// whether it is still within limit, along with the count. The window starts
// at the first hit and is not extended by later ones.
func (l *Limiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
	if !l.Enabled() {
		return true, 0, nil
	}

	k := "rl:" + key
	pipe := l.r.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}
	n := incr.Val()
	return n <= limit, n, nil
}

func (l *Limiter) Ping(ctx context.Context) error {
	if !l.Enabled() {
		return nil
	}
	return l.r.Ping(ctx).Err()
}

func (l *Limiter) Close() error {
	if !l.Enabled() {
		return nil
	}
	return l.r.Close()
}
