package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lector/domain"

	"github.com/google/uuid"
)

// FeedRepository implements port.FeedRepository over content.feeds.
type FeedRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewFeedRepository(db DBTX, logger *slog.Logger) *FeedRepository {
	return &FeedRepository{
		db:     db,
		logger: logger.With("component", "feed_repository"),
	}
}

const feedColumns = `id, feed_url, title, description, language, site_url, feed_type,
	is_active, last_fetched_at, last_update, last_error, last_error_at,
	error_count, latest_articles, created_at, updated_at`

func (r *FeedRepository) Create(ctx context.Context, feed *domain.Feed) (domain.UpsertResult, error) {
	query := `
		INSERT INTO content.feeds
			(id, feed_url, title, description, language, site_url, feed_type,
			 is_active, error_count, latest_articles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier(ctx, r.db).Exec(ctx, query,
		feed.ID, feed.FeedURL, feed.Title, feed.Description, feed.Language,
		feed.SiteURL, feed.FeedType, feed.IsActive, feed.ErrorCount,
		feed.LatestArticles, feed.CreatedAt, feed.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.AlreadyExists, nil
		}
		return domain.AlreadyExists, fmt.Errorf("failed to create feed: %w", err)
	}

	return domain.Created, nil
}

func (r *FeedRepository) GetByID(ctx context.Context, feedID uuid.UUID) (*domain.Feed, error) {
	query := `SELECT ` + feedColumns + ` FROM content.feeds WHERE id = $1`
	return r.scanOne(ctx, query, feedID)
}

func (r *FeedRepository) GetByURL(ctx context.Context, feedURL string) (*domain.Feed, error) {
	query := `SELECT ` + feedColumns + ` FROM content.feeds WHERE feed_url = $1`
	return r.scanOne(ctx, query, feedURL)
}

// ListRefreshable returns active feeds that have at least one subscription,
// oldest fetch first so starved feeds catch up.
func (r *FeedRepository) ListRefreshable(ctx context.Context) ([]*domain.Feed, error) {
	query := `
		SELECT ` + feedColumns + `
		FROM content.feeds f
		WHERE f.is_active
		  AND EXISTS (
			SELECT 1 FROM personalization.subscriptions s
			WHERE s.feed_id = f.id AND s.is_active
		  )
		ORDER BY f.last_fetched_at ASC NULLS FIRST`

	return r.scanMany(ctx, query)
}

func (r *FeedRepository) ListAll(ctx context.Context, limit, offset int) ([]*domain.Feed, error) {
	query := `
		SELECT ` + feedColumns + `
		FROM content.feeds
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	return r.scanMany(ctx, query, limit, offset)
}

func (r *FeedRepository) UpdateFetchSuccess(ctx context.Context, feedID uuid.UUID, lastUpdate *time.Time, latestArticles []uuid.UUID) error {
	query := `
		UPDATE content.feeds
		SET last_fetched_at = now(),
		    last_update = COALESCE($2, last_update),
		    latest_articles = $3,
		    last_error = NULL,
		    last_error_at = NULL,
		    error_count = 0,
		    updated_at = now()
		WHERE id = $1`

	tag, err := querier(ctx, r.db).Exec(ctx, query, feedID, lastUpdate, latestArticles)
	if err != nil {
		return fmt.Errorf("failed to record fetch success: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFeedNotFound
	}

	return nil
}

func (r *FeedRepository) UpdateFetchFailure(ctx context.Context, feedID uuid.UUID, message string) error {
	query := `
		UPDATE content.feeds
		SET last_error = $2,
		    last_error_at = now(),
		    error_count = error_count + 1,
		    updated_at = now()
		WHERE id = $1`

	tag, err := querier(ctx, r.db).Exec(ctx, query, feedID, message)
	if err != nil {
		return fmt.Errorf("failed to record fetch failure: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFeedNotFound
	}

	return nil
}

// DeactivateOrphans is the one-statement daily sweep over feeds with no
// subscriptions.
func (r *FeedRepository) DeactivateOrphans(ctx context.Context) (int64, error) {
	query := `
		UPDATE content.feeds f
		SET is_active = false, updated_at = now()
		WHERE f.is_active
		  AND NOT EXISTS (
			SELECT 1 FROM personalization.subscriptions s
			WHERE s.feed_id = f.id
		  )`

	tag, err := querier(ctx, r.db).Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate orphaned feeds: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *FeedRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Feed, error) {
	var f domain.Feed
	err := querier(ctx, r.db).QueryRow(ctx, query, arg).Scan(
		&f.ID, &f.FeedURL, &f.Title, &f.Description, &f.Language, &f.SiteURL,
		&f.FeedType, &f.IsActive, &f.LastFetchedAt, &f.LastUpdate, &f.LastError,
		&f.LastErrorAt, &f.ErrorCount, &f.LatestArticles, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.ErrFeedNotFound
		}
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}

	return &f, nil
}

func (r *FeedRepository) scanMany(ctx context.Context, query string, args ...any) ([]*domain.Feed, error) {
	rows, err := querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds: %w", err)
	}
	defer rows.Close()

	var feeds []*domain.Feed
	for rows.Next() {
		var f domain.Feed
		if err := rows.Scan(
			&f.ID, &f.FeedURL, &f.Title, &f.Description, &f.Language, &f.SiteURL,
			&f.FeedType, &f.IsActive, &f.LastFetchedAt, &f.LastUpdate, &f.LastError,
			&f.LastErrorAt, &f.ErrorCount, &f.LatestArticles, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feed: %w", err)
		}
		feeds = append(feeds, &f)
	}

	return feeds, rows.Err()
}
