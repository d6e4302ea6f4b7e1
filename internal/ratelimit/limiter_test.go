package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisemotors/compare-engine/internal/monitoring"
)

func newMemoryLimiter(t *testing.T, config Config) *RateLimiter {
	t.Helper()
	client, err := NewRedisClient("", "", 0)
	require.NoError(t, err)
	require.False(t, client.IsEnabled())
	return NewRateLimiter(client, config, monitoring.NewMetrics())
}

func TestAllowIPInMemoryFallback(t *testing.T) {
	rl := newMemoryLimiter(t, Config{IPLimitPerMin: 1, BurstMultiplier: 1})

	first, err := rl.AllowIP(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Limit)

	second, err := rl.AllowIP(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, second.Allowed)
	assert.Positive(t, second.RetryAfter)
}

func TestAllowIPTracksClientsIndependently(t *testing.T) {
	rl := newMemoryLimiter(t, Config{IPLimitPerMin: 1, BurstMultiplier: 1})

	_, err := rl.AllowIP(context.Background(), "10.0.0.1")
	require.NoError(t, err)

	other, err := rl.AllowIP(context.Background(), "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "a busy neighbor must not exhaust this client's bucket")
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 60, config.IPLimitPerMin)
	assert.Equal(t, 2, config.BurstMultiplier)
}

func TestBurstAllowsShortSpikes(t *testing.T) {
	rl := newMemoryLimiter(t, Config{IPLimitPerMin: 2, BurstMultiplier: 2})

	allowed := 0
	for i := 0; i < 10; i++ {
		res, err := rl.AllowIP(context.Background(), "10.0.0.3")
		require.NoError(t, err)
		if res.Allowed {
			allowed++
		}
	}
	// Bucket capacity is limit * burst multiplier.
	assert.Equal(t, 4, allowed)
}
