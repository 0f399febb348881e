package job

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lector/config"
	"lector/domain"
	"lector/mocks"
	"lector/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_NextWait(t *testing.T) {
	s := NewScheduler(nil, testLogger())

	t.Run("interval schedule waits the full interval", func(t *testing.T) {
		wait := s.nextWait(Schedule{Every: 15 * time.Minute}, time.Now())
		assert.Equal(t, 15*time.Minute, wait)
	})

	t.Run("daily schedule before the hour waits until it", func(t *testing.T) {
		now := time.Date(2026, 8, 26, 1, 0, 0, 0, time.UTC)
		wait := s.nextWait(Schedule{At: &ClockTime{Hour: 2}}, now)
		assert.Equal(t, time.Hour, wait)
	})

	t.Run("daily schedule past the hour waits for tomorrow", func(t *testing.T) {
		now := time.Date(2026, 8, 26, 2, 30, 0, 0, time.UTC)
		wait := s.nextWait(Schedule{At: &ClockTime{Hour: 2}}, now)
		assert.Equal(t, 23*time.Hour+30*time.Minute, wait)
	})
}

func TestScheduler_PublishesOnTickNotAtStartup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := mocks.NewMockJobQueue(ctrl)
	status := mocks.NewMockJobStatusStore(ctrl)
	jobs := usecase.NewJobUsecase(queue, status, config.JobConfig{}, testLogger())

	var published atomic.Int32
	status.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	queue.EXPECT().Enqueue(gomock.Any(), gomock.Any(), domain.JobFeedRefreshCycle, gomock.Nil(), 0).
		DoAndReturn(func(context.Context, uuid.UUID, domain.JobType, map[string]string, int) error {
			published.Add(1)
			return nil
		}).AnyTimes()

	s := NewScheduler(jobs, testLogger())
	s.Add(Schedule{Name: "refresh", Type: domain.JobFeedRefreshCycle, Every: 50 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	// Nothing may fire before the first interval elapses.
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, published.Load())

	assert.Eventually(t, func() bool { return published.Load() >= 1 },
		time.Second, 10*time.Millisecond)

	cancel()
	s.Shutdown()
}
