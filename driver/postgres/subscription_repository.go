package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"lector/domain"

	"github.com/google/uuid"
)

// SubscriptionRepository implements port.SubscriptionRepository over the
// personalization.subscriptions join table.
type SubscriptionRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewSubscriptionRepository(db DBTX, logger *slog.Logger) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:     db,
		logger: logger.With("component", "subscription_repository"),
	}
}

const subscriptionColumns = `id, user_id, feed_id, title, folder_id, is_pinned,
	is_active, unread_count, import_id, created_at, updated_at`

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) (domain.UpsertResult, error) {
	query := `
		INSERT INTO personalization.subscriptions
			(id, user_id, feed_id, title, folder_id, is_pinned, is_active,
			 unread_count, import_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier(ctx, r.db).Exec(ctx, query,
		sub.ID, sub.UserID, sub.FeedID, sub.Title, sub.FolderID, sub.IsPinned,
		sub.IsActive, sub.UnreadCount, sub.ImportID, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.AlreadyExists, nil
		}
		return domain.AlreadyExists, fmt.Errorf("failed to create subscription: %w", err)
	}

	return domain.Created, nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, userID, subscriptionID uuid.UUID) (*domain.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM personalization.subscriptions
		WHERE id = $1 AND user_id = $2`

	return r.scanOne(ctx, query, subscriptionID, userID)
}

func (r *SubscriptionRepository) GetByUserAndFeed(ctx context.Context, userID, feedID uuid.UUID) (*domain.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM personalization.subscriptions
		WHERE user_id = $1 AND feed_id = $2`

	return r.scanOne(ctx, query, userID, feedID)
}

// ListByUser returns decorated subscriptions plus the total count for
// offset pagination. sortOrder is "alphabetical" or "recent_first".
func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID, sortOrder string, limit, offset int) ([]*domain.SubscriptionView, int, error) {
	orderBy := "f.last_update DESC NULLS LAST, s.created_at DESC"
	if sortOrder == "alphabetical" {
		orderBy = "lower(COALESCE(NULLIF(s.title, ''), f.title)) ASC"
	}

	where := "s.user_id = $1"
	args := []any{userID}
	if folderID != nil {
		args = append(args, *folderID)
		where += fmt.Sprintf(" AND s.folder_id = $%d", len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM personalization.subscriptions s WHERE ` + where
	if err := querier(ctx, r.db).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT s.id, s.user_id, s.feed_id, s.title, s.folder_id, s.is_pinned,
		       s.is_active, s.unread_count, s.import_id, s.created_at, s.updated_at,
		       f.feed_url, f.title, f.site_url, f.last_update,
		       f.last_fetched_at, f.last_error_at
		FROM personalization.subscriptions s
		JOIN content.feeds f ON f.id = s.feed_id
		WHERE %s
		ORDER BY s.is_pinned DESC, %s
		LIMIT $%d OFFSET $%d`, where, orderBy, len(args)-1, len(args))

	rows, err := querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var views []*domain.SubscriptionView
	for rows.Next() {
		var v domain.SubscriptionView
		var feed domain.Feed
		if err := rows.Scan(
			&v.ID, &v.UserID, &v.FeedID, &v.Title, &v.FolderID, &v.IsPinned,
			&v.IsActive, &v.UnreadCount, &v.ImportID, &v.CreatedAt, &v.UpdatedAt,
			&v.FeedURL, &v.FeedTitle, &v.SiteURL, &v.LastUpdate,
			&feed.LastFetchedAt, &feed.LastErrorAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan subscription: %w", err)
		}
		v.Health = feed.Health(nowFunc())
		views = append(views, &v)
	}

	return views, total, rows.Err()
}

func (r *SubscriptionRepository) ListByImportID(ctx context.Context, userID, importID uuid.UUID) ([]*domain.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM personalization.subscriptions
		WHERE user_id = $1 AND import_id = $2`

	rows, err := querier(ctx, r.db).Query(ctx, query, userID, importID)
	if err != nil {
		return nil, fmt.Errorf("failed to list import subscriptions: %w", err)
	}
	defer rows.Close()

	return scanSubscriptions(rows)
}

func (r *SubscriptionRepository) ListFeedIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT feed_id FROM personalization.subscriptions WHERE user_id = $1`

	rows, err := querier(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user feed ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan feed id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *SubscriptionRepository) ActiveSubscriberIDs(ctx context.Context, feedID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT user_id FROM personalization.subscriptions
		WHERE feed_id = $1 AND is_active`

	rows, err := querier(ctx, r.db).Query(ctx, query, feedID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *SubscriptionRepository) Update(ctx context.Context, sub *domain.Subscription) error {
	query := `
		UPDATE personalization.subscriptions
		SET title = $3, folder_id = $4, is_pinned = $5, is_active = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2`

	tag, err := querier(ctx, r.db).Exec(ctx, query,
		sub.ID, sub.UserID, sub.Title, sub.FolderID, sub.IsPinned, sub.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}

	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, userID, subscriptionID uuid.UUID) error {
	query := `
		DELETE FROM personalization.subscriptions
		WHERE id = $1 AND user_id = $2`

	tag, err := querier(ctx, r.db).Exec(ctx, query, subscriptionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}

	return nil
}

// DeleteByImportID removes a whole import batch in one statement after the
// reachability-aware cleanup has run.
func (r *SubscriptionRepository) DeleteByImportID(ctx context.Context, userID, importID uuid.UUID) (int64, error) {
	query := `
		DELETE FROM personalization.subscriptions
		WHERE user_id = $1 AND import_id = $2`

	tag, err := querier(ctx, r.db).Exec(ctx, query, userID, importID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete import batch: %w", err)
	}

	return tag.RowsAffected(), nil
}

// RecalculateUnread recomputes unread_count from the projection rows. The
// count only considers articles linked to the subscription's feed.
func (r *SubscriptionRepository) RecalculateUnread(ctx context.Context, userID uuid.UUID, feedID *uuid.UUID) error {
	where := "s.user_id = $1"
	args := []any{userID}
	if feedID != nil {
		args = append(args, *feedID)
		where += " AND s.feed_id = $2"
	}

	query := `
		UPDATE personalization.subscriptions s
		SET unread_count = (
			SELECT COUNT(*)
			FROM personalization.user_articles ua
			JOIN content.article_sources src ON src.article_id = ua.article_id
			WHERE ua.user_id = s.user_id
			  AND src.feed_id = s.feed_id
			  AND NOT ua.is_read
		), updated_at = now()
		WHERE ` + where

	if _, err := querier(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to recalculate unread counts: %w", err)
	}

	return nil
}

func (r *SubscriptionRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.Subscription, error) {
	var s domain.Subscription
	err := querier(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.UserID, &s.FeedID, &s.Title, &s.FolderID, &s.IsPinned,
		&s.IsActive, &s.UnreadCount, &s.ImportID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &s, nil
}

func scanSubscriptions(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*domain.Subscription, error) {
	var subs []*domain.Subscription
	for rows.Next() {
		var s domain.Subscription
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.FeedID, &s.Title, &s.FolderID, &s.IsPinned,
			&s.IsActive, &s.UnreadCount, &s.ImportID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, &s)
	}

	return subs, rows.Err()
}
