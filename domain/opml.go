package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportStatus tracks an OPML import/export batch through its lifecycle.
type ImportStatus string

const (
	ImportPending    ImportStatus = "pending"
	ImportProcessing ImportStatus = "processing"
	ImportCompleted  ImportStatus = "completed"
	ImportFailed     ImportStatus = "failed"
)

// FailedFeed records one per-feed import failure.
type FailedFeed struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// OpmlImport tracks one OPML import batch. Subscriptions created by the
// batch carry its id so the whole batch can be rolled back.
type OpmlImport struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	UserID         uuid.UUID    `json:"user_id" db:"user_id"`
	Filename       string       `json:"filename" db:"filename"`
	StorageKey     string       `json:"storage_key" db:"storage_key"`
	Status         ImportStatus `json:"status" db:"status"`
	Total          int          `json:"total" db:"total"`
	Imported       int          `json:"imported" db:"imported"`
	Failed         int          `json:"failed" db:"failed"`
	Duplicate      int          `json:"duplicate" db:"duplicate"`
	FailedFeedsLog []FailedFeed `json:"failed_feeds_log,omitempty" db:"failed_feeds_log"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
}
