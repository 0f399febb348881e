package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lector/domain"

	"github.com/google/uuid"
)

// UserArticleRepository implements port.UserArticleRepository. Fan-out and
// the auto-mark-read sweep stay single statements by design.
type UserArticleRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewUserArticleRepository(db DBTX, logger *slog.Logger) *UserArticleRepository {
	return &UserArticleRepository{
		db:     db,
		logger: logger.With("component", "user_article_repository"),
	}
}

// FanOutToSubscribers creates projection rows for every active subscriber
// of the feed in one ON CONFLICT DO NOTHING statement. Re-running for
// already-projected articles is a no-op.
func (r *UserArticleRepository) FanOutToSubscribers(ctx context.Context, feedID uuid.UUID, articleIDs []uuid.UUID) (int64, error) {
	if len(articleIDs) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO personalization.user_articles (id, user_id, article_id, is_read, read_later, created_at)
		SELECT gen_random_uuid(), s.user_id, a.id, false, false, now()
		FROM personalization.subscriptions s
		CROSS JOIN unnest($2::uuid[]) AS a(id)
		WHERE s.feed_id = $1 AND s.is_active
		ON CONFLICT (user_id, article_id) DO NOTHING`

	tag, err := querier(ctx, r.db).Exec(ctx, query, feedID, articleIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to fan out user articles: %w", err)
	}

	return tag.RowsAffected(), nil
}

// BackfillForUser creates projection rows for one user, used on subscribe
// from Feed.latest_articles.
func (r *UserArticleRepository) BackfillForUser(ctx context.Context, userID uuid.UUID, articleIDs []uuid.UUID) (int64, error) {
	if len(articleIDs) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO personalization.user_articles (id, user_id, article_id, is_read, read_later, created_at)
		SELECT gen_random_uuid(), $1, a.id, false, false, now()
		FROM unnest($2::uuid[]) AS a(id)
		ON CONFLICT (user_id, article_id) DO NOTHING`

	tag, err := querier(ctx, r.db).Exec(ctx, query, userID, articleIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to backfill user articles: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *UserArticleRepository) Get(ctx context.Context, userID, articleID uuid.UUID) (*domain.UserArticle, error) {
	query := `
		SELECT id, user_id, article_id, is_read, read_later, read_at, created_at
		FROM personalization.user_articles
		WHERE user_id = $1 AND article_id = $2`

	var ua domain.UserArticle
	err := querier(ctx, r.db).QueryRow(ctx, query, userID, articleID).Scan(
		&ua.ID, &ua.UserID, &ua.ArticleID, &ua.IsRead, &ua.ReadLater, &ua.ReadAt, &ua.CreatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get user article: %w", err)
	}

	return &ua, nil
}

func (r *UserArticleRepository) GetOrCreate(ctx context.Context, userID, articleID uuid.UUID) (*domain.UserArticle, error) {
	ua, err := r.Get(ctx, userID, articleID)
	if err == nil {
		return ua, nil
	}
	if err != domain.ErrArticleNotFound {
		return nil, err
	}

	insert := `
		INSERT INTO personalization.user_articles (id, user_id, article_id, is_read, read_later, created_at)
		VALUES (gen_random_uuid(), $1, $2, false, false, now())
		ON CONFLICT (user_id, article_id) DO NOTHING`

	if _, err := querier(ctx, r.db).Exec(ctx, insert, userID, articleID); err != nil {
		return nil, fmt.Errorf("failed to create user article: %w", err)
	}

	return r.Get(ctx, userID, articleID)
}

func (r *UserArticleRepository) SetRead(ctx context.Context, userID, articleID uuid.UUID, isRead bool) error {
	query := `
		UPDATE personalization.user_articles
		SET is_read = $3,
		    read_at = CASE WHEN $3 THEN now() ELSE NULL END
		WHERE user_id = $1 AND article_id = $2`

	tag, err := querier(ctx, r.db).Exec(ctx, query, userID, articleID, isRead)
	if err != nil {
		return fmt.Errorf("failed to set read state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}

	return nil
}

func (r *UserArticleRepository) SetReadLater(ctx context.Context, userID, articleID uuid.UUID, readLater bool) error {
	query := `
		UPDATE personalization.user_articles
		SET read_later = $3
		WHERE user_id = $1 AND article_id = $2`

	tag, err := querier(ctx, r.db).Exec(ctx, query, userID, articleID, readLater)
	if err != nil {
		return fmt.Errorf("failed to set read-later state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}

	return nil
}

// BulkMarkRead marks every unread row matching the filter as read.
func (r *UserArticleRepository) BulkMarkRead(ctx context.Context, userID uuid.UUID, filter domain.ArticleFilter) (int64, error) {
	where, args := buildArticleFilter(userID, filter)

	query := `
		UPDATE personalization.user_articles ua
		SET is_read = true, read_at = now()
		FROM content.articles a
		WHERE a.id = ua.article_id
		  AND NOT ua.is_read
		  AND ` + where

	tag, err := querier(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk mark read: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *UserArticleRepository) DeleteForUser(ctx context.Context, userID uuid.UUID, articleIDs []uuid.UUID) (int64, error) {
	if len(articleIDs) == 0 {
		return 0, nil
	}

	query := `
		DELETE FROM personalization.user_articles
		WHERE user_id = $1 AND article_id = ANY($2::uuid[])`

	tag, err := querier(ctx, r.db).Exec(ctx, query, userID, articleIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user articles: %w", err)
	}

	return tag.RowsAffected(), nil
}

// AutoMarkReadSweep is the nightly one-statement update joining preferences
// against unread rows. Cutoffs: 7/14/30 days by per-user choice.
func (r *UserArticleRepository) AutoMarkReadSweep(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE personalization.user_articles ua
		SET is_read = true, read_at = $1
		FROM personalization.user_preferences p
		JOIN content.articles a ON true
		WHERE p.user_id = ua.user_id
		  AND a.id = ua.article_id
		  AND NOT ua.is_read
		  AND p.auto_mark_as_read <> 'disabled'
		  AND a.published_at < $1::timestamptz - (
			CASE p.auto_mark_as_read
				WHEN '7_days' THEN interval '7 days'
				WHEN '14_days' THEN interval '14 days'
				WHEN '30_days' THEN interval '30 days'
			END
		  )`

	tag, err := querier(ctx, r.db).Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to run auto-mark-read sweep: %w", err)
	}

	return tag.RowsAffected(), nil
}

const articleViewColumns = `a.id, a.canonical_url, a.title, a.author, a.summary, a.content,
	a.source_tags, a.media_url, a.platform_metadata, a.published_at, a.created_at,
	ua.is_read, ua.read_later, ua.read_at`

// ListView returns cursor-paginated article projections, newest first.
func (r *UserArticleRepository) ListView(ctx context.Context, userID uuid.UUID, filter domain.ArticleFilter, cursor *domain.Cursor, limit int) ([]*domain.ArticleView, error) {
	where, args := buildArticleFilter(userID, filter)

	if cursor != nil {
		args = append(args, cursor.PublishedAt, cursor.ID)
		where += fmt.Sprintf(" AND (a.published_at, a.id) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit)

	query := `
		SELECT ` + articleViewColumns + `
		FROM personalization.user_articles ua
		JOIN content.articles a ON a.id = ua.article_id
		WHERE ` + where + `
		ORDER BY a.published_at DESC, a.id DESC
		LIMIT $` + fmt.Sprint(len(args))

	rows, err := querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var views []*domain.ArticleView
	for rows.Next() {
		var v domain.ArticleView
		if err := rows.Scan(
			&v.ID, &v.CanonicalURL, &v.Title, &v.Author, &v.Summary, &v.Content,
			&v.SourceTags, &v.MediaURL, &v.PlatformMetadata, &v.PublishedAt, &v.CreatedAt,
			&v.IsRead, &v.ReadLater, &v.ReadAt); err != nil {
			return nil, fmt.Errorf("failed to scan article view: %w", err)
		}
		views = append(views, &v)
	}

	return views, rows.Err()
}

func (r *UserArticleRepository) GetView(ctx context.Context, userID, articleID uuid.UUID) (*domain.ArticleView, error) {
	query := `
		SELECT ` + articleViewColumns + `
		FROM personalization.user_articles ua
		JOIN content.articles a ON a.id = ua.article_id
		WHERE ua.user_id = $1 AND ua.article_id = $2`

	var v domain.ArticleView
	err := querier(ctx, r.db).QueryRow(ctx, query, userID, articleID).Scan(
		&v.ID, &v.CanonicalURL, &v.Title, &v.Author, &v.Summary, &v.Content,
		&v.SourceTags, &v.MediaURL, &v.PlatformMetadata, &v.PublishedAt, &v.CreatedAt,
		&v.IsRead, &v.ReadLater, &v.ReadAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article view: %w", err)
	}

	return &v, nil
}

// buildArticleFilter renders the shared WHERE clause for listing, bulk
// mark-read, and counting. $1 is always the user id.
func buildArticleFilter(userID uuid.UUID, filter domain.ArticleFilter) (string, []any) {
	var clauses []string
	args := []any{userID}

	clauses = append(clauses, "ua.user_id = $1")

	addArg := func(v any) int {
		args = append(args, v)
		return len(args)
	}

	if len(filter.SubscriptionIDs) > 0 {
		n := addArg(filter.SubscriptionIDs)
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM personalization.subscriptions s
			JOIN content.article_sources src ON src.feed_id = s.feed_id
			WHERE s.id = ANY($%d::uuid[]) AND s.user_id = ua.user_id AND src.article_id = a.id)`, n))
	}

	if len(filter.FolderIDs) > 0 {
		n := addArg(filter.FolderIDs)
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM personalization.subscriptions s
			JOIN content.article_sources src ON src.feed_id = s.feed_id
			WHERE s.folder_id = ANY($%d::uuid[]) AND s.user_id = ua.user_id AND src.article_id = a.id)`, n))
	}

	if len(filter.TagIDs) > 0 {
		n := addArg(filter.TagIDs)
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM personalization.article_tags at
			WHERE at.user_article_id = ua.id AND at.user_tag_id = ANY($%d::uuid[]))`, n))
	}

	if filter.IsRead != nil {
		n := addArg(*filter.IsRead)
		clauses = append(clauses, fmt.Sprintf("ua.is_read = $%d", n))
	}

	if filter.ReadLater != nil {
		n := addArg(*filter.ReadLater)
		clauses = append(clauses, fmt.Sprintf("ua.read_later = $%d", n))
	}

	if filter.Query != "" {
		n := addArg(toPrefixTSQuery(filter.Query))
		clauses = append(clauses, fmt.Sprintf(
			"to_tsvector('simple', a.title) @@ to_tsquery('simple', $%d)", n))
	}

	if filter.FromDate != nil {
		n := addArg(*filter.FromDate)
		clauses = append(clauses, fmt.Sprintf("a.published_at >= $%d", n))
	}

	if filter.ToDate != nil {
		n := addArg(*filter.ToDate)
		clauses = append(clauses, fmt.Sprintf("a.published_at <= $%d", n))
	}

	return strings.Join(clauses, " AND "), args
}
