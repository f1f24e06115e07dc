package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astralhq/cosmic-counsel/internal/monitoring"
)

func TestRateLimiterFallbackMode(t *testing.T) {
	// No Redis configured, so all checks use the in-memory token bucket
	redisClient := &RedisClient{enabled: false}
	config := Config{
		IPLimitPerMin:   3,
		BurstMultiplier: 2,
	}
	metrics := monitoring.NewMetrics()

	limiter := NewRateLimiter(redisClient, config, metrics)
	ctx := context.Background()

	// Burst capacity is limit * multiplier, floored at 5
	for i := 0; i < 6; i++ {
		result, err := limiter.AllowIP(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 3, result.Limit)
	}

	result, err := limiter.AllowIP(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Greater(t, result.RetryAfter, time.Duration(0))

	// A different IP has its own bucket
	result, err = limiter.AllowIP(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestRateLimiterFallbackMetrics(t *testing.T) {
	redisClient := &RedisClient{enabled: false}
	metrics := monitoring.NewMetrics()

	limiter := NewRateLimiter(redisClient, DefaultConfig(), metrics)

	_, err := limiter.AllowIP(context.Background(), "10.0.0.3")
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats["rate_limit_fallbacks"])
}

func TestRateLimiterGetStats(t *testing.T) {
	redisClient := &RedisClient{enabled: false}
	limiter := NewRateLimiter(redisClient, DefaultConfig(), monitoring.NewMetrics())

	_, err := limiter.AllowIP(context.Background(), "10.0.0.4")
	require.NoError(t, err)

	stats := limiter.GetStats()
	assert.Equal(t, false, stats["redis_enabled"])
	assert.Equal(t, 1, stats["fallback_limiters"])
	assert.Equal(t, 60, stats["ip_limit_per_min"])
}

func TestRedisClientGracefulDegradation(t *testing.T) {
	client, err := NewRedisClient("", "", 0)
	require.NoError(t, err)

	assert.False(t, client.IsEnabled())
	assert.Equal(t, map[string]interface{}{"enabled": false}, client.GetPoolStats())
	assert.NoError(t, client.Close())
}
