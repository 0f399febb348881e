package job

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"lector/config"
	"lector/domain"
	redisdrv "lector/driver/redis"
	"lector/metrics"
	"lector/port"
)

const depthSampleInterval = 15 * time.Second

// Worker consumes the job stream and executes handlers with bounded
// concurrency. Failed jobs are retried through the stream until the
// configured try limit; every terminal outcome lands on the job record.
type Worker struct {
	queue    *redisdrv.Queue
	status   port.JobStatusStore
	notifier port.Notifier
	metrics  *metrics.Metrics
	registry Registry
	cfg      config.JobConfig
	consumer string
	sem      *semaphore.Weighted
	logger   *slog.Logger
	wg       sync.WaitGroup
}

func NewWorker(
	queue *redisdrv.Queue,
	status port.JobStatusStore,
	notifier port.Notifier,
	m *metrics.Metrics,
	registry Registry,
	cfg config.JobConfig,
	logger *slog.Logger,
) *Worker {
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "worker"
	}

	return &Worker{
		queue:    queue,
		status:   status,
		notifier: notifier,
		metrics:  m,
		registry: registry,
		cfg:      cfg,
		consumer: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		sem:      semaphore.NewWeighted(int64(cfg.MaxJobs)),
		logger:   logger.With("component", "worker"),
	}
}

// Run claims and executes jobs until ctx is cancelled, then waits for
// in-flight jobs to finish.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.queue.EnsureGroup(ctx); err != nil {
		return fmt.Errorf("ensure consumer group: %w", err)
	}

	w.logger.Info("worker started",
		"consumer", w.consumer, "max_jobs", w.cfg.MaxJobs)

	go w.sampleDepth(ctx)

	for {
		jobs, err := w.queue.Claim(ctx, w.consumer, w.cfg.MaxJobs, w.cfg.PollBlock)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			w.logger.Error("claim failed", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		for _, queued := range jobs {
			if err := w.sem.Acquire(ctx, 1); err != nil {
				break
			}
			w.wg.Add(1)
			go w.process(ctx, queued)
		}

		if ctx.Err() != nil {
			break
		}
	}

	w.logger.Info("worker draining")
	w.wg.Wait()
	w.logger.Info("worker stopped")
	return nil
}

func (w *Worker) process(ctx context.Context, queued redisdrv.QueuedJob) {
	defer w.wg.Done()
	defer w.sem.Release(1)

	w.metrics.JobsInFlight.Inc()
	defer w.metrics.JobsInFlight.Dec()

	logger := w.logger.With("job_id", queued.JobID, "job_type", queued.Type)

	record := w.loadRecord(ctx, queued)
	record.Status = domain.JobRunning
	record.Tries = queued.Tries + 1
	if err := w.status.Update(ctx, record); err != nil {
		logger.Warn("failed to mark job running", "error", err)
	}

	handler, ok := w.registry[queued.Type]
	if !ok {
		w.finish(ctx, record, nil, nil, fmt.Errorf("no handler for job type %q", queued.Type))
		w.ack(ctx, queued, logger)
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, w.cfg.Timeout)
	defer cancel()

	start := time.Now()
	result, note, err := handler(jobCtx, queued.Payload)
	w.metrics.JobDuration.WithLabelValues(string(queued.Type)).Observe(time.Since(start).Seconds())

	if err != nil && record.Tries < w.cfg.MaxTries {
		logger.Warn("job failed, requeueing",
			"tries", record.Tries, "max_tries", w.cfg.MaxTries, "error", err)
		w.requeue(ctx, queued, record, err)
		w.ack(ctx, queued, logger)
		return
	}

	w.finish(ctx, record, result, note, err)
	w.ack(ctx, queued, logger)

	if err != nil {
		logger.Error("job failed permanently", "tries", record.Tries, "error", err)
	} else {
		logger.Info("job completed", "duration", time.Since(start))
	}
}

// loadRecord fetches the record written at publish time. Records expire
// from the cache, so a fresh one is rebuilt when the lookup misses.
func (w *Worker) loadRecord(ctx context.Context, queued redisdrv.QueuedJob) *domain.JobRecord {
	record, err := w.status.Get(ctx, queued.JobID)
	if err == nil {
		return record
	}

	return &domain.JobRecord{
		ID:        queued.JobID,
		Type:      queued.Type,
		Status:    domain.JobRunning,
		Payload:   queued.Payload,
		CreatedAt: time.Now(),
	}
}

func (w *Worker) requeue(ctx context.Context, queued redisdrv.QueuedJob, record *domain.JobRecord, cause error) {
	base := context.WithoutCancel(ctx)

	record.Status = domain.JobPending
	record.Error = cause.Error()
	if err := w.status.Update(base, record); err != nil {
		w.logger.Warn("failed to update requeued job record", "job_id", record.ID, "error", err)
	}

	if err := w.queue.Enqueue(base, queued.JobID, queued.Type, queued.Payload, record.Tries); err != nil {
		w.logger.Error("failed to requeue job", "job_id", record.ID, "error", err)
	}
	w.metrics.JobsTotal.WithLabelValues(string(queued.Type), "retried").Inc()
}

// finish writes the terminal record state and, for user-addressed jobs,
// delivers the notification. Bookkeeping survives shutdown cancellation.
func (w *Worker) finish(ctx context.Context, record *domain.JobRecord, result map[string]interface{}, note *domain.Notification, cause error) {
	base := context.WithoutCancel(ctx)

	now := time.Now()
	record.CompletedAt = &now
	if cause != nil {
		record.Status = domain.JobErrored
		record.Error = cause.Error()
	} else {
		record.Status = domain.JobCompleted
		record.Result = result
		record.Error = ""
	}

	if err := w.status.Update(base, record); err != nil {
		w.logger.Warn("failed to finalize job record", "job_id", record.ID, "error", err)
	}

	status := "completed"
	if cause != nil {
		status = "error"
	}
	w.metrics.JobsTotal.WithLabelValues(string(record.Type), status).Inc()

	w.notify(base, record, note)
}

func (w *Worker) notify(ctx context.Context, record *domain.JobRecord, note *domain.Notification) {
	if note == nil {
		return
	}
	userID, err := payloadUUID(record.Payload, "user_id")
	if err != nil {
		return
	}
	if err := w.notifier.Notify(ctx, userID, *note); err != nil {
		w.logger.Warn("failed to deliver notification",
			"user_id", userID, "job_id", record.ID, "error", err)
	}
}

func (w *Worker) ack(ctx context.Context, queued redisdrv.QueuedJob, logger *slog.Logger) {
	if err := w.queue.Ack(context.WithoutCancel(ctx), queued.MessageID); err != nil {
		logger.Error("failed to ack job", "message_id", queued.MessageID, "error", err)
	}
}

func (w *Worker) sampleDepth(ctx context.Context) {
	ticker := time.NewTicker(depthSampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			depth, err := w.queue.Depth(ctx)
			if err != nil {
				continue
			}
			w.metrics.QueueDepth.Set(float64(depth))
		}
	}
}
