package port

//go:generate mockgen -source=queue_port.go -destination=../mocks/mock_queue_port.go -package=mocks

import (
	"context"
	"time"

	"lector/domain"

	"github.com/google/uuid"
)

// JobQueue enqueues work for the worker process.
type JobQueue interface {
	Enqueue(ctx context.Context, jobID uuid.UUID, jobType domain.JobType, payload map[string]string, tries int) error
	// AcquireOnce takes an idempotency slot; false means another enqueue
	// with the same key is still in flight.
	AcquireOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// JobStatusStore tracks job records in the cache under job:{id}. Every
// update resets the record TTL.
type JobStatusStore interface {
	Create(ctx context.Context, record *domain.JobRecord) error
	Update(ctx context.Context, record *domain.JobRecord) error
	Get(ctx context.Context, jobID uuid.UUID) (*domain.JobRecord, error)
}

// Notifier delivers user-addressed notifications over pub/sub.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, notification domain.Notification) error
	// Subscribe streams notifications for a user until ctx is cancelled.
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan domain.Notification, error)
}
