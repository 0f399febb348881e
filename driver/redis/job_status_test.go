package redis

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"lector/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestJobStatusStore_CreateAndGet(t *testing.T) {
	_, client := newTestClient(t)
	store := NewJobStatusStore(client, time.Hour, slog.Default())

	record := &domain.JobRecord{
		ID:        uuid.New(),
		Type:      domain.JobOpmlImport,
		Status:    domain.JobPending,
		Payload:   map[string]string{"import_id": uuid.NewString()},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, store.Create(context.Background(), record))

	got, err := store.Get(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, domain.JobPending, got.Status)
	assert.Equal(t, record.Payload, got.Payload)
}

func TestJobStatusStore_GetMissing(t *testing.T) {
	_, client := newTestClient(t)
	store := NewJobStatusStore(client, time.Hour, slog.Default())

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobStatusStore_UpdateResetsTTL(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewJobStatusStore(client, time.Hour, slog.Default())

	record := &domain.JobRecord{ID: uuid.New(), Type: domain.JobOpmlExport, Status: domain.JobPending}
	require.NoError(t, store.Create(context.Background(), record))

	// Burn half the TTL, then update; the key should live a full hour again.
	mr.FastForward(30 * time.Minute)

	record.Status = domain.JobCompleted
	require.NoError(t, store.Update(context.Background(), record))

	mr.FastForward(45 * time.Minute)

	got, err := store.Get(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobCompleted, got.Status)
}

func TestJobStatusStore_ExpiresAfterTTL(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewJobStatusStore(client, time.Hour, slog.Default())

	record := &domain.JobRecord{ID: uuid.New(), Type: domain.JobFeedCreateAndSubscribe, Status: domain.JobPending}
	require.NoError(t, store.Create(context.Background(), record))

	mr.FastForward(61 * time.Minute)

	_, err := store.Get(context.Background(), record.ID)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}
