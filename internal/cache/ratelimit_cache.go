package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitCache tracks request counts per client for public endpoints.
type RateLimitCache interface {
	// Allow increments the counter for key and reports whether the caller
	// is still inside the limit for the current window.
	Allow(ctx context.Context, key string) (bool, error)
}

type rateLimitCache struct {
	client *redis.Client
	window time.Duration
	max    int64
}

// NewRateLimitCache creates a fixed-window rate limiter. Defaults match the
// public feedback endpoint: 100 requests per 15 minutes.
func NewRateLimitCache(client *redis.Client, window time.Duration, max int64) RateLimitCache {
	if window <= 0 {
		window = 15 * time.Minute
	}
	if max <= 0 {
		max = 100
	}
	return &rateLimitCache{
		client: client,
		window: window,
		max:    max,
	}
}

func (c *rateLimitCache) key(id string) string {
	return fmt.Sprintf("rate_limit:%s", id)
}

func (c *rateLimitCache) Allow(ctx context.Context, id string) (bool, error) {
	key := c.key(id)

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	// First hit in a window owns the expiry.
	if count == 1 {
		if err := c.client.Expire(ctx, key, c.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= c.max, nil
}
