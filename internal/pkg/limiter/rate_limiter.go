// internal/pkg/limiter/rate_limiter.go
package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles transition traffic with a fixed-window TTL counter in
// Redis. Keys are scoped per actor and action so one noisy assistant cannot
// starve the rest.
type RateLimiter struct {
	client *redis.Client

	maxRequests int64
	window      time.Duration
}

const (
	defaultMaxRequests = 30
	defaultWindow      = time.Minute
)

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{
		client:      client,
		maxRequests: defaultMaxRequests,
		window:      defaultWindow,
	}
}

// WithLimits overrides the per-window budget.
func (r *RateLimiter) WithLimits(maxRequests int64, window time.Duration) *RateLimiter {
	r.maxRequests = maxRequests
	r.window = window
	return r
}

// AllowTransition checks whether the actor may issue another transition
// request inside the current window.
func (r *RateLimiter) AllowTransition(ctx context.Context, actorID int64, action string) (bool, int64, error) {
	key := fmt.Sprintf("ratelimit:transition:%d:%s", actorID, action)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment transition counter: %w", err)
	}

	// Set expiration on first attempt. A counter that never expires would
	// throttle the actor forever, so on failure the key is discarded and the
	// caller decides (the middleware fails open).
	if count == 1 {
		if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
			r.client.Del(ctx, key)
			return false, 0, fmt.Errorf("failed to set transition counter ttl: %w", err)
		}
	}

	remaining := r.maxRequests - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= r.maxRequests, remaining, nil
}

// Reset clears the actor's counter for an action.
func (r *RateLimiter) Reset(ctx context.Context, actorID int64, action string) error {
	key := fmt.Sprintf("ratelimit:transition:%d:%s", actorID, action)
	return r.client.Del(ctx, key).Err()
}
