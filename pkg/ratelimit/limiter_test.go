package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franchisemedia/adengine/pkg/config"
	redisclient "github.com/franchisemedia/adengine/pkg/redis"
)

func testConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:       true,
		WindowSeconds: 60,
		Limit:         2,
		RedisPrefix:   "rate-limit",
	}
}

func TestAllowWithinLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := New(redisclient.NewClientFromRedis(db), testConfig())

	mock.ExpectTxPipeline()
	mock.ExpectIncr("rate-limit:carousel:10.0.0.1").SetVal(1)
	mock.ExpectExpireNX("rate-limit:carousel:10.0.0.1", time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	result, err := limiter.Allow(context.Background(), "carousel", "10.0.0.1")

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 2, result.Limit)
	assert.Equal(t, 1, result.Remaining)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAllowOverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := New(redisclient.NewClientFromRedis(db), testConfig())

	mock.ExpectTxPipeline()
	mock.ExpectIncr("rate-limit:carousel:10.0.0.1").SetVal(3)
	mock.ExpectExpireNX("rate-limit:carousel:10.0.0.1", time.Minute).SetVal(false)
	mock.ExpectTxPipelineExec()

	result, err := limiter.Allow(context.Background(), "carousel", "10.0.0.1")

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, time.Minute, result.RetryAfter)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAllowDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	limiter := New(nil, cfg)

	result, err := limiter.Allow(context.Background(), "carousel", "10.0.0.1")

	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestAllowNilLimiter(t *testing.T) {
	var limiter *Limiter

	result, err := limiter.Allow(context.Background(), "carousel", "10.0.0.1")

	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
