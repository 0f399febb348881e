package job

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lector/config"
	"lector/domain"
	redisdrv "lector/driver/redis"
	"lector/metrics"
	"lector/mocks"
)

type workerHarness struct {
	worker   *Worker
	queue    *redisdrv.Queue
	status   *mocks.MockJobStatusStore
	notifier *mocks.MockNotifier

	mu      sync.Mutex
	updates []domain.JobRecord
	done    chan domain.JobRecord
}

func newWorkerHarness(t *testing.T, registry Registry, cfg config.JobConfig) *workerHarness {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctrl := gomock.NewController(t)
	h := &workerHarness{
		queue:    redisdrv.NewQueue(client, cfg.Stream, cfg.ConsumerGroup, testLogger()),
		status:   mocks.NewMockJobStatusStore(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
		done:     make(chan domain.JobRecord, 4),
	}

	h.status.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record *domain.JobRecord) error {
			h.mu.Lock()
			h.updates = append(h.updates, *record)
			h.mu.Unlock()
			if record.Status == domain.JobCompleted || record.Status == domain.JobErrored {
				h.done <- *record
			}
			return nil
		}).AnyTimes()

	h.worker = NewWorker(h.queue, h.status, h.notifier, metrics.New(), registry, cfg, testLogger())
	return h
}

func (h *workerHarness) run(t *testing.T) (stop func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		assert.NoError(t, h.worker.Run(ctx))
		close(finished)
	}()

	return func() {
		cancel()
		select {
		case <-finished:
		case <-time.After(5 * time.Second):
			t.Fatal("worker did not stop")
		}
	}
}

func (h *workerHarness) waitTerminal(t *testing.T) domain.JobRecord {
	t.Helper()

	select {
	case record := <-h.done:
		return record
	case <-time.After(5 * time.Second):
		t.Fatal("job never reached a terminal state")
		return domain.JobRecord{}
	}
}

func (h *workerHarness) statuses() []domain.JobStatus {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]domain.JobStatus, 0, len(h.updates))
	for _, record := range h.updates {
		out = append(out, record.Status)
	}
	return out
}

func testJobConfig() config.JobConfig {
	return config.JobConfig{
		Timeout:       time.Minute,
		MaxTries:      3,
		MaxJobs:       2,
		Stream:        "lector:jobs",
		ConsumerGroup: "lector-workers",
		PollBlock:     10 * time.Millisecond,
	}
}

func TestWorker_CompletesJob(t *testing.T) {
	registry := Registry{
		domain.JobFeedRefreshCycle: func(context.Context, map[string]string) (map[string]interface{}, *domain.Notification, error) {
			return map[string]interface{}{"succeeded": 3}, nil, nil
		},
	}

	cfg := testJobConfig()
	h := newWorkerHarness(t, registry, cfg)

	jobID := uuid.New()
	h.status.EXPECT().Get(gomock.Any(), jobID).Return(&domain.JobRecord{
		ID:     jobID,
		Type:   domain.JobFeedRefreshCycle,
		Status: domain.JobPending,
	}, nil)

	require.NoError(t, h.queue.Enqueue(context.Background(), jobID, domain.JobFeedRefreshCycle, nil, 0))

	stop := h.run(t)
	defer stop()

	record := h.waitTerminal(t)
	assert.Equal(t, domain.JobCompleted, record.Status)
	assert.Equal(t, 1, record.Tries)
	assert.Equal(t, 3, record.Result["succeeded"])
	require.NotNil(t, record.CompletedAt)
	assert.Equal(t, []domain.JobStatus{domain.JobRunning, domain.JobCompleted}, h.statuses())
}

func TestWorker_RetriesUntilMaxTries(t *testing.T) {
	userID := uuid.New()
	registry := Registry{
		domain.JobOpmlExport: func(context.Context, map[string]string) (map[string]interface{}, *domain.Notification, error) {
			return nil, failureNote("Export failed", domain.JobOpmlExport, "boom"), errors.New("storage offline")
		},
	}

	cfg := testJobConfig()
	cfg.MaxTries = 2
	h := newWorkerHarness(t, registry, cfg)

	jobID := uuid.New()
	payload := map[string]string{"user_id": userID.String()}
	h.status.EXPECT().Get(gomock.Any(), jobID).Return(&domain.JobRecord{
		ID:      jobID,
		Type:    domain.JobOpmlExport,
		Status:  domain.JobPending,
		Payload: payload,
	}, nil).Times(2)

	// The failure notification goes out once, on the terminal attempt only.
	h.notifier.EXPECT().Notify(gomock.Any(), userID, gomock.Any()).Return(nil)

	require.NoError(t, h.queue.Enqueue(context.Background(), jobID, domain.JobOpmlExport, payload, 0))

	stop := h.run(t)
	defer stop()

	record := h.waitTerminal(t)
	assert.Equal(t, domain.JobErrored, record.Status)
	assert.Equal(t, 2, record.Tries)
	assert.Equal(t, "storage offline", record.Error)
	assert.Equal(t, []domain.JobStatus{
		domain.JobRunning, domain.JobPending,
		domain.JobRunning, domain.JobErrored,
	}, h.statuses())
}

func TestWorker_UnknownTypeIsTerminal(t *testing.T) {
	cfg := testJobConfig()
	h := newWorkerHarness(t, Registry{}, cfg)

	jobID := uuid.New()
	h.status.EXPECT().Get(gomock.Any(), jobID).Return(&domain.JobRecord{
		ID:     jobID,
		Type:   domain.JobFeedCleanup,
		Status: domain.JobPending,
	}, nil)

	require.NoError(t, h.queue.Enqueue(context.Background(), jobID, domain.JobFeedCleanup, nil, 0))

	stop := h.run(t)
	defer stop()

	record := h.waitTerminal(t)
	assert.Equal(t, domain.JobErrored, record.Status)
	assert.Contains(t, record.Error, "no handler")
}

func TestWorker_RebuildsExpiredRecord(t *testing.T) {
	registry := Registry{
		domain.JobAutoMarkRead: func(context.Context, map[string]string) (map[string]interface{}, *domain.Notification, error) {
			return map[string]interface{}{"marked_read": int64(0)}, nil, nil
		},
	}

	cfg := testJobConfig()
	h := newWorkerHarness(t, registry, cfg)

	jobID := uuid.New()
	h.status.EXPECT().Get(gomock.Any(), jobID).Return(nil, errors.New("record expired"))

	require.NoError(t, h.queue.Enqueue(context.Background(), jobID, domain.JobAutoMarkRead, nil, 0))

	stop := h.run(t)
	defer stop()

	record := h.waitTerminal(t)
	assert.Equal(t, domain.JobCompleted, record.Status)
	assert.Equal(t, jobID, record.ID)
	assert.Equal(t, domain.JobAutoMarkRead, record.Type)
}
