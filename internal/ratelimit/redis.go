package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts actions in redis so the bound holds across all
// process instances. INCR is atomic, which also closes the read-modify-
// write race the in-memory table tolerates.
type RedisLimiter struct {
	Client *redis.Client
}

// NewRedis returns a limiter backed by client.
func NewRedis(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{Client: client}
}

// Allow increments the counter for key and admits while it is at or below
// limit. The expiry is set when the key is first created, so the window is
// anchored at the first action.
func (r *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	n, err := r.Client.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return Result{}, err
	}

	if n == 1 {
		if err := r.Client.Expire(ctx, "ratelimit:"+key, window).Err(); err != nil {
			return Result{}, err
		}
	}

	ttl, err := r.Client.TTL(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return Result{}, err
	}
	if ttl < 0 {
		// Key exists without expiry (e.g. a crash between INCR and
		// EXPIRE); re-arm the window rather than lock the key forever.
		ttl = window
		if err := r.Client.Expire(ctx, "ratelimit:"+key, window).Err(); err != nil {
			return Result{}, err
		}
	}

	remaining := limit - int(n)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   int(n) <= limit,
		Limit:     limit,
		Remaining: remaining,
		Reset:     time.Now().Add(ttl),
	}, nil
}
