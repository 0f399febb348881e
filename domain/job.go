package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobType names the work a queued job performs.
type JobType string

const (
	JobFeedCreateAndSubscribe JobType = "feed_create_and_subscribe"
	JobOpmlImport             JobType = "opml_import"
	JobOpmlExport             JobType = "opml_export"
	JobFeedRefreshCycle       JobType = "scheduled_feed_refresh"
	JobFeedCleanup            JobType = "scheduled_feed_cleanup"
	JobAutoMarkRead           JobType = "scheduled_auto_mark_read"
)

// KnownJobType reports whether t is a dispatchable job type.
func KnownJobType(t JobType) bool {
	switch t {
	case JobFeedCreateAndSubscribe, JobOpmlImport, JobOpmlExport,
		JobFeedRefreshCycle, JobFeedCleanup, JobAutoMarkRead:
		return true
	}
	return false
}

// JobStatus tracks a job record through its lifecycle.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobErrored   JobStatus = "error"
)

// JobRecord is the ephemeral job state kept in the cache under job:{id}.
type JobRecord struct {
	ID          uuid.UUID              `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]string      `json:"payload,omitempty"`
	Result      map[string]interface{} `json:"result,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Tries       int                    `json:"tries"`
	CreatedAt   time.Time              `json:"created_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
}
