// internal/pkg/limiter/rate_limiter_test.go
package limiter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRateLimiter(client), mr
}

func TestAllowTransitionBudget(t *testing.T) {
	rl, _ := newTestLimiter(t)
	rl.WithLimits(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, remaining, err := rl.AllowTransition(ctx, 7, "claim")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, int64(2-i), remaining)
	}

	allowed, remaining, err := rl.AllowTransition(ctx, 7, "claim")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, int64(0), remaining)
}

func TestCounterKeyCarriesTTL(t *testing.T) {
	rl, mr := newTestLimiter(t)
	rl.WithLimits(3, time.Minute)
	ctx := context.Background()

	_, _, err := rl.AllowTransition(ctx, 7, "claim")
	require.NoError(t, err)

	key := fmt.Sprintf("ratelimit:transition:%d:%s", 7, "claim")
	require.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	// Window elapses; the budget resets instead of throttling forever.
	mr.FastForward(time.Minute + time.Second)
	assert.False(t, mr.Exists(key))

	allowed, _, err := rl.AllowTransition(ctx, 7, "claim")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestKeysScopedPerActorAndAction(t *testing.T) {
	rl, _ := newTestLimiter(t)
	rl.WithLimits(1, time.Minute)
	ctx := context.Background()

	allowed, _, err := rl.AllowTransition(ctx, 7, "claim")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, _ = rl.AllowTransition(ctx, 7, "claim")
	assert.False(t, allowed)

	// A different action and a different actor each have their own budget.
	allowed, _, err = rl.AllowTransition(ctx, 7, "transfer")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = rl.AllowTransition(ctx, 8, "claim")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestResetClearsBudget(t *testing.T) {
	rl, _ := newTestLimiter(t)
	rl.WithLimits(1, time.Minute)
	ctx := context.Background()

	_, _, err := rl.AllowTransition(ctx, 7, "claim")
	require.NoError(t, err)

	allowed, _, _ := rl.AllowTransition(ctx, 7, "claim")
	require.False(t, allowed)

	require.NoError(t, rl.Reset(ctx, 7, "claim"))

	allowed, _, err = rl.AllowTransition(ctx, 7, "claim")
	require.NoError(t, err)
	assert.True(t, allowed)
}
