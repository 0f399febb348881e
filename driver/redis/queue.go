package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"lector/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Queue implements port.JobQueue on a Redis Stream plus a consumer group
// for the worker side.
type Queue struct {
	client *redis.Client
	stream string
	group  string
	logger *slog.Logger
}

// QueuedJob is one message claimed from the stream.
type QueuedJob struct {
	MessageID string
	JobID     uuid.UUID
	Type      domain.JobType
	Payload   map[string]string
	Tries     int
}

func NewQueue(client *redis.Client, stream, group string, logger *slog.Logger) *Queue {
	return &Queue{
		client: client,
		stream: stream,
		group:  group,
		logger: logger.With("component", "job_queue"),
	}
}

func (q *Queue) Enqueue(ctx context.Context, jobID uuid.UUID, jobType domain.JobType, payload map[string]string, tries int) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode job payload: %w", err)
	}

	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]any{
			"job_id":  jobID.String(),
			"type":    string(jobType),
			"payload": string(encoded),
			"tries":   strconv.Itoa(tries),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}

	return nil
}

// AcquireOnce takes an idempotency slot with SET NX. False means another
// enqueue with the same key is still pending.
func (q *Queue) AcquireOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := q.client.SetNX(ctx, "once:"+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire idempotency slot: %w", err)
	}
	return ok, nil
}

// ReleaseOnce frees an idempotency slot so a failed enqueue can retry.
func (q *Queue) ReleaseOnce(ctx context.Context, key string) error {
	return q.client.Del(ctx, "once:"+key).Err()
}

// EnsureGroup creates the consumer group, tolerating BUSYGROUP when it
// already exists.
func (q *Queue) EnsureGroup(ctx context.Context) error {
	err := q.client.XGroupCreateMkStream(ctx, q.stream, q.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// Claim blocks up to block for new messages addressed to consumer.
func (q *Queue) Claim(ctx context.Context, consumer string, count int, block time.Duration) ([]QueuedJob, error) {
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.group,
		Consumer: consumer,
		Streams:  []string{q.stream, ">"},
		Count:    int64(count),
		Block:    block,
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read job stream: %w", err)
	}

	var jobs []QueuedJob
	for _, stream := range streams {
		for _, message := range stream.Messages {
			job, err := decodeMessage(message)
			if err != nil {
				// Poisoned frame: ack it away and move on
				q.logger.ErrorContext(ctx, "dropping malformed job message",
					"message_id", message.ID, "error", err)
				_ = q.Ack(ctx, message.ID)
				continue
			}
			jobs = append(jobs, job)
		}
	}

	return jobs, nil
}

// Ack removes a processed message from the pending entries list.
func (q *Queue) Ack(ctx context.Context, messageID string) error {
	if err := q.client.XAck(ctx, q.stream, q.group, messageID).Err(); err != nil {
		return fmt.Errorf("failed to ack message: %w", err)
	}
	return nil
}

// Depth reports the stream length for the queue depth gauge.
func (q *Queue) Depth(ctx context.Context) (int64, error) {
	n, err := q.client.XLen(ctx, q.stream).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read queue depth: %w", err)
	}
	return n, nil
}

func decodeMessage(message redis.XMessage) (QueuedJob, error) {
	job := QueuedJob{MessageID: message.ID, Payload: map[string]string{}}

	rawID, ok := message.Values["job_id"].(string)
	if !ok {
		return job, fmt.Errorf("message %s missing job_id", message.ID)
	}
	jobID, err := uuid.Parse(rawID)
	if err != nil {
		return job, fmt.Errorf("message %s has invalid job_id: %w", message.ID, err)
	}
	job.JobID = jobID

	rawType, ok := message.Values["type"].(string)
	if !ok {
		return job, fmt.Errorf("message %s missing type", message.ID)
	}
	job.Type = domain.JobType(rawType)

	if rawPayload, ok := message.Values["payload"].(string); ok && rawPayload != "" {
		if err := json.Unmarshal([]byte(rawPayload), &job.Payload); err != nil {
			return job, fmt.Errorf("message %s has invalid payload: %w", message.ID, err)
		}
	}

	if rawTries, ok := message.Values["tries"].(string); ok {
		if tries, err := strconv.Atoi(rawTries); err == nil {
			job.Tries = tries
		}
	}

	return job, nil
}
