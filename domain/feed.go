package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeedType classifies the source document format.
type FeedType string

const (
	FeedTypeRSS  FeedType = "rss"
	FeedTypeAtom FeedType = "atom"
	FeedTypeRDF  FeedType = "rdf"
)

// FeedHealth is derived from fetch/error timestamps; it is never persisted.
type FeedHealth string

const (
	FeedHealthy FeedHealth = "healthy"
	FeedStale   FeedHealth = "stale"
	FeedError   FeedHealth = "error"
)

// Feed is a globally shared feed row. LatestArticles keeps the most recent
// article ids (newest first, bounded) for fast subscribe backfill.
type Feed struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	FeedURL        string      `json:"feed_url" db:"feed_url"`
	Title          string      `json:"title" db:"title"`
	Description    *string     `json:"description,omitempty" db:"description"`
	Language       *string     `json:"language,omitempty" db:"language"`
	SiteURL        *string     `json:"site_url,omitempty" db:"site_url"`
	FeedType       FeedType    `json:"feed_type" db:"feed_type"`
	IsActive       bool        `json:"is_active" db:"is_active"`
	LastFetchedAt  *time.Time  `json:"last_fetched_at,omitempty" db:"last_fetched_at"`
	LastUpdate     *time.Time  `json:"last_update,omitempty" db:"last_update"`
	LastError      *string     `json:"last_error,omitempty" db:"last_error"`
	LastErrorAt    *time.Time  `json:"last_error_at,omitempty" db:"last_error_at"`
	ErrorCount     int         `json:"error_count" db:"error_count"`
	LatestArticles []uuid.UUID `json:"latest_articles" db:"latest_articles"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// Health derives the feed's health state at the given instant.
// A fetch older than an hour means stale even when errors are newer.
func (f *Feed) Health(now time.Time) FeedHealth {
	staleCutoff := now.Add(-time.Hour)

	switch {
	case f.LastFetchedAt == nil && f.LastErrorAt == nil:
		return FeedStale

	case f.LastFetchedAt != nil && f.LastErrorAt != nil:
		if f.LastFetchedAt.Before(staleCutoff) {
			return FeedStale
		}
		if f.LastErrorAt.After(*f.LastFetchedAt) {
			return FeedError
		}
		return FeedHealthy

	case f.LastErrorAt != nil:
		return FeedError

	default:
		if f.LastFetchedAt.Before(staleCutoff) {
			return FeedStale
		}
		return FeedHealthy
	}
}

// FeedMeta is the parsed feed-level metadata.
type FeedMeta struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"` // ≤500 chars
	Language    *string  `json:"language,omitempty"`    // normalized xx or xx-YY
	FeedType    FeedType `json:"feed_type"`
	Website     *string  `json:"website,omitempty"`
}

// ContentSource records which dedicated content tag the entry body came from.
type ContentSource int

const (
	ContentSourceNone ContentSource = iota
	ContentSourceMediaDescription
	ContentSourceAtomContent
	ContentSourceContentEncoded
)

func (s ContentSource) String() string {
	switch s {
	case ContentSourceMediaDescription:
		return "media_description"
	case ContentSourceAtomContent:
		return "atom_content"
	case ContentSourceContentEncoded:
		return "content_encoded"
	default:
		return "none"
	}
}

// EntryRecord is one parsed feed entry, ready for ingestion.
type EntryRecord struct {
	Title            string                 `json:"title"`
	URL              string                 `json:"url"`
	Summary          string                 `json:"summary"`
	Content          *string                `json:"content,omitempty"` // sanitized HTML
	ContentSource    ContentSource          `json:"content_source"`
	Author           *string                `json:"author,omitempty"`
	Categories       []string               `json:"categories"`
	MediaURL         *string                `json:"media_url,omitempty"`
	PlatformMetadata map[string]interface{} `json:"platform_metadata,omitempty"`
	PublishedAt      *time.Time             `json:"published_at,omitempty"` // UTC
}

// ParseErrorKind classifies parser failures.
type ParseErrorKind string

const (
	ParseErrNoFeedData ParseErrorKind = "no_feed_data"
	ParseErrNoEntries  ParseErrorKind = "no_entries"
	ParseErrParsing    ParseErrorKind = "parsing_error"
)

// RefreshStatus captures the per-feed outcome of a refresh cycle.
type RefreshStatus string

const (
	RefreshSuccess RefreshStatus = "success"
	RefreshSkipped RefreshStatus = "skipped"
	RefreshError   RefreshStatus = "error"
	RefreshUnknown RefreshStatus = "unknown"
)

// RefreshCycleResult aggregates a scheduled refresh run. Skipped feeds count
// as successes; unknown outcomes count as failures.
type RefreshCycleResult struct {
	TotalFeeds  int           `json:"total_feeds"`
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	NewArticles int           `json:"new_articles"`
	Duration    time.Duration `json:"duration"`
}
