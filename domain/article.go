package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article is a globally unique content item keyed by canonical URL.
// PublishedAt doubles as the monthly partition key.
type Article struct {
	ID               uuid.UUID              `json:"id" db:"id"`
	CanonicalURL     string                 `json:"canonical_url" db:"canonical_url"`
	Title            string                 `json:"title" db:"title"`
	Author           *string                `json:"author,omitempty" db:"author"`
	Summary          string                 `json:"summary" db:"summary"` // ≤2000 chars
	Content          *string                `json:"content,omitempty" db:"content"`
	SourceTags       []string               `json:"source_tags" db:"source_tags"`
	MediaURL         *string                `json:"media_url,omitempty" db:"media_url"`
	PlatformMetadata map[string]interface{} `json:"platform_metadata,omitempty" db:"platform_metadata"`
	PublishedAt      time.Time              `json:"published_at" db:"published_at"`
	CreatedAt        time.Time              `json:"created_at" db:"created_at"`
}

// ArticleSource links an article to a feed that published it.
type ArticleSource struct {
	ArticleID uuid.UUID `json:"article_id" db:"article_id"`
	FeedID    uuid.UUID `json:"feed_id" db:"feed_id"`
}

// UserArticle is the per-user projection of read/bookmark state.
type UserArticle struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	ArticleID uuid.UUID  `json:"article_id" db:"article_id"`
	IsRead    bool       `json:"is_read" db:"is_read"`
	ReadLater bool       `json:"read_later" db:"read_later"`
	ReadAt    *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// ArticleView joins the global article with the caller's projection for
// list and detail responses.
type ArticleView struct {
	Article
	IsRead    bool        `json:"is_read"`
	ReadLater bool        `json:"read_later"`
	ReadAt    *time.Time  `json:"read_at,omitempty"`
	FeedIDs   []uuid.UUID `json:"feed_ids,omitempty"`
	TagIDs    []uuid.UUID `json:"tag_ids,omitempty"`
}

// ArticleFilter narrows article listings. Zero values mean "no filter".
type ArticleFilter struct {
	SubscriptionIDs []uuid.UUID
	TagIDs          []uuid.UUID
	FolderIDs       []uuid.UUID
	IsRead          *bool
	ReadLater       *bool
	Query           string
	FromDate        *time.Time
	ToDate          *time.Time
}

// UpsertResult reports whether a get-or-create path created the row.
type UpsertResult int

const (
	Created UpsertResult = iota
	AlreadyExists
)
