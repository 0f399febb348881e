package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"lector/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// JobStatusStore implements port.JobStatusStore. Records live under
// job:{id} as JSON with a TTL reset on every update.
type JobStatusStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewJobStatusStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *JobStatusStore {
	return &JobStatusStore{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "job_status_store"),
	}
}

func jobKey(jobID uuid.UUID) string {
	return "job:" + jobID.String()
}

func (s *JobStatusStore) Create(ctx context.Context, record *domain.JobRecord) error {
	return s.write(ctx, record)
}

func (s *JobStatusStore) Update(ctx context.Context, record *domain.JobRecord) error {
	return s.write(ctx, record)
}

func (s *JobStatusStore) Get(ctx context.Context, jobID uuid.UUID) (*domain.JobRecord, error) {
	raw, err := s.client.Get(ctx, jobKey(jobID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job record: %w", err)
	}

	var record domain.JobRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode job record: %w", err)
	}

	return &record, nil
}

func (s *JobStatusStore) write(ctx context.Context, record *domain.JobRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode job record: %w", err)
	}

	if err := s.client.Set(ctx, jobKey(record.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store job record: %w", err)
	}

	return nil
}
