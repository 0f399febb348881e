package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter_FirstCallImmediate(t *testing.T) {
	limiter := NewHostLimiter(time.Hour)

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background(), "https://example.com/feed.xml"))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestHostLimiter_SecondCallWaits(t *testing.T) {
	limiter := NewHostLimiter(50 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, limiter.Wait(ctx, "https://example.com/a"))

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "https://example.com/b"))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestHostLimiter_HostsAreIndependent(t *testing.T) {
	limiter := NewHostLimiter(time.Hour)
	ctx := context.Background()

	require.NoError(t, limiter.Wait(ctx, "https://one.example.com/feed"))

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "https://two.example.com/feed"))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestHostLimiter_ContextCancellation(t *testing.T) {
	limiter := NewHostLimiter(time.Hour)

	require.NoError(t, limiter.Wait(context.Background(), "https://example.com/a"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx, "https://example.com/b")
	assert.Error(t, err)
}

func TestHostLimiter_RejectsBadURL(t *testing.T) {
	limiter := NewHostLimiter(time.Second)

	assert.Error(t, limiter.Wait(context.Background(), "not a url"))
	assert.Error(t, limiter.Wait(context.Background(), "/relative/path"))
}
