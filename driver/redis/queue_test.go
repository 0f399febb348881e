package redis

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"lector/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_EnqueueAndClaim(t *testing.T) {
	_, client := newTestClient(t)
	queue := NewQueue(client, "lector:jobs", "lector-workers", slog.Default())

	ctx := context.Background()
	require.NoError(t, queue.EnsureGroup(ctx))

	jobID := uuid.New()
	payload := map[string]string{"url": "https://example.com/feed.xml", "user_id": uuid.NewString()}
	require.NoError(t, queue.Enqueue(ctx, jobID, domain.JobFeedCreateAndSubscribe, payload, 0))

	jobs, err := queue.Claim(ctx, "worker-1", 10, 10*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	assert.Equal(t, jobID, jobs[0].JobID)
	assert.Equal(t, domain.JobFeedCreateAndSubscribe, jobs[0].Type)
	assert.Equal(t, payload, jobs[0].Payload)
	assert.Equal(t, 0, jobs[0].Tries)

	require.NoError(t, queue.Ack(ctx, jobs[0].MessageID))
}

func TestQueue_EnsureGroupIdempotent(t *testing.T) {
	_, client := newTestClient(t)
	queue := NewQueue(client, "lector:jobs", "lector-workers", slog.Default())

	ctx := context.Background()
	require.NoError(t, queue.EnsureGroup(ctx))
	require.NoError(t, queue.EnsureGroup(ctx))
}

func TestQueue_RetryCarriesTries(t *testing.T) {
	_, client := newTestClient(t)
	queue := NewQueue(client, "lector:jobs", "lector-workers", slog.Default())

	ctx := context.Background()
	require.NoError(t, queue.EnsureGroup(ctx))

	jobID := uuid.New()
	require.NoError(t, queue.Enqueue(ctx, jobID, domain.JobOpmlImport, nil, 2))

	jobs, err := queue.Claim(ctx, "worker-1", 1, 10*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 2, jobs[0].Tries)
}

func TestQueue_AcquireOnce(t *testing.T) {
	_, client := newTestClient(t)
	queue := NewQueue(client, "lector:jobs", "lector-workers", slog.Default())

	ctx := context.Background()
	key := "create_subscribe:user:https://example.com/feed.xml"

	ok, err := queue.AcquireOnce(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = queue.AcquireOnce(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must be refused while the slot is held")

	require.NoError(t, queue.ReleaseOnce(ctx, key))

	ok, err = queue.AcquireOnce(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestQueue_Depth(t *testing.T) {
	_, client := newTestClient(t)
	queue := NewQueue(client, "lector:jobs", "lector-workers", slog.Default())

	ctx := context.Background()
	require.NoError(t, queue.Enqueue(ctx, uuid.New(), domain.JobOpmlExport, nil, 0))
	require.NoError(t, queue.Enqueue(ctx, uuid.New(), domain.JobOpmlExport, nil, 0))

	depth, err := queue.Depth(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, depth)
}
