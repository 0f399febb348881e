package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lector/config"
	"lector/domain"
	"lector/port"
	apperrors "lector/utils/errors"
)

// JobUsecase publishes jobs to the stream and reads their cached status
// records.
type JobUsecase struct {
	queue       port.JobQueue
	statusStore port.JobStatusStore
	cfg         config.JobConfig
	logger      *slog.Logger
}

func NewJobUsecase(queue port.JobQueue, statusStore port.JobStatusStore, cfg config.JobConfig, logger *slog.Logger) *JobUsecase {
	return &JobUsecase{
		queue:       queue,
		statusStore: statusStore,
		cfg:         cfg,
		logger:      logger.With("component", "job_usecase"),
	}
}

// Publish writes a pending status record and enqueues the job. The record
// outlives the stream entry by JOB_TTL so callers can poll the outcome.
func (uc *JobUsecase) Publish(ctx context.Context, jobType domain.JobType, payload map[string]string) (*domain.JobRecord, error) {
	if !domain.KnownJobType(jobType) {
		return nil, apperrors.NewValidationContextError(
			"unknown job type",
			"usecase", "job_usecase", "publish", map[string]interface{}{
				"type": string(jobType),
			})
	}

	record := &domain.JobRecord{
		ID:        uuid.New(),
		Type:      jobType,
		Status:    domain.JobPending,
		Payload:   payload,
		Tries:     0,
		CreatedAt: time.Now(),
	}

	if err := uc.statusStore.Create(ctx, record); err != nil {
		return nil, err
	}

	if err := uc.queue.Enqueue(ctx, record.ID, jobType, payload, 0); err != nil {
		return nil, err
	}

	uc.logger.Info("job published", "job_id", record.ID, "type", jobType)
	return record, nil
}

// Get returns the cached status record for one job.
func (uc *JobUsecase) Get(ctx context.Context, jobID uuid.UUID) (*domain.JobRecord, error) {
	return uc.statusStore.Get(ctx, jobID)
}
