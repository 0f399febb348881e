package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscription joins a user to a feed with per-user display attributes.
// Unique per (user, feed).
type Subscription struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	FeedID      uuid.UUID  `json:"feed_id" db:"feed_id"`
	Title       *string    `json:"title,omitempty" db:"title"` // override; nil falls back to feed title
	FolderID    *uuid.UUID `json:"folder_id,omitempty" db:"folder_id"`
	IsPinned    bool       `json:"is_pinned" db:"is_pinned"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	UnreadCount int        `json:"unread_count" db:"unread_count"`
	ImportID    *uuid.UUID `json:"import_id,omitempty" db:"import_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// SubscriptionView decorates a subscription with feed metadata for listings.
type SubscriptionView struct {
	Subscription
	FeedURL       string     `json:"feed_url"`
	FeedTitle     string     `json:"feed_title"`
	SiteURL       *string    `json:"site_url,omitempty"`
	LastUpdate    *time.Time `json:"last_update,omitempty"`
	Health        FeedHealth `json:"health"`
}

// DisplayTitle resolves the effective title (override wins).
func (s *SubscriptionView) DisplayTitle() string {
	if s.Title != nil && *s.Title != "" {
		return *s.Title
	}
	return s.FeedTitle
}

// DiscoverOutcome is the one-call discovery result surfaced by POST /discover.
type DiscoverOutcome string

const (
	DiscoverExisting   DiscoverOutcome = "existing"
	DiscoverMoved      DiscoverOutcome = "moved"
	DiscoverSubscribed DiscoverOutcome = "subscribed"
	DiscoverPending    DiscoverOutcome = "pending"
	DiscoverFailed     DiscoverOutcome = "failed"
)
