package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lector/domain"

	"github.com/google/uuid"
)

// ArticleRepository implements port.ArticleRepository over the partitioned
// content.articles table and the content.article_sources join.
type ArticleRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewArticleRepository(db DBTX, logger *slog.Logger) *ArticleRepository {
	return &ArticleRepository{
		db:     db,
		logger: logger.With("component", "article_repository"),
	}
}

const articleColumns = `id, canonical_url, title, author, summary, content,
	source_tags, media_url, platform_metadata, published_at, created_at`

// GetByCanonicalURLForUpdate serializes concurrent upserts of the same
// canonical URL across refreshes. The lock is released at transaction end.
func (r *ArticleRepository) GetByCanonicalURLForUpdate(ctx context.Context, canonicalURL string) (*domain.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM content.articles
		WHERE canonical_url = $1
		FOR UPDATE`

	return r.scanOne(ctx, query, canonicalURL)
}

func (r *ArticleRepository) GetByCanonicalURL(ctx context.Context, canonicalURL string) (*domain.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM content.articles
		WHERE canonical_url = $1`

	return r.scanOne(ctx, query, canonicalURL)
}

func (r *ArticleRepository) Insert(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO content.articles
			(id, canonical_url, title, author, summary, content, source_tags,
			 media_url, platform_metadata, published_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier(ctx, r.db).Exec(ctx, query,
		article.ID, article.CanonicalURL, article.Title, article.Author,
		article.Summary, article.Content, article.SourceTags, article.MediaURL,
		article.PlatformMetadata, article.PublishedAt, article.CreatedAt)
	if err != nil {
		// Callers distinguish unique violations (concurrent creator) from
		// missing partitions (create + retry); both bubble up raw.
		return err
	}

	return nil
}

func (r *ArticleRepository) ListByIDs(ctx context.Context, articleIDs []uuid.UUID) ([]*domain.Article, error) {
	if len(articleIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + articleColumns + `
		FROM content.articles
		WHERE id = ANY($1)
		ORDER BY published_at DESC`

	rows, err := querier(ctx, r.db).Query(ctx, query, articleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(
			&a.ID, &a.CanonicalURL, &a.Title, &a.Author, &a.Summary, &a.Content,
			&a.SourceTags, &a.MediaURL, &a.PlatformMetadata, &a.PublishedAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, &a)
	}

	return articles, rows.Err()
}

func (r *ArticleRepository) LinkSource(ctx context.Context, articleID, feedID uuid.UUID) (domain.UpsertResult, error) {
	query := `
		INSERT INTO content.article_sources (article_id, feed_id)
		VALUES ($1, $2)
		ON CONFLICT (article_id, feed_id) DO NOTHING`

	tag, err := querier(ctx, r.db).Exec(ctx, query, articleID, feedID)
	if err != nil {
		return domain.AlreadyExists, fmt.Errorf("failed to link article source: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.AlreadyExists, nil
	}

	return domain.Created, nil
}

func (r *ArticleRepository) ListIDsByFeed(ctx context.Context, feedID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT article_id FROM content.article_sources WHERE feed_id = $1`

	rows, err := querier(ctx, r.db).Query(ctx, query, feedID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed articles: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan article id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ListUnreachable filters candidates down to articles not linked to any of
// the given remaining feeds. Used by unsubscribe and OPML rollback so a
// user keeps articles still reachable through other subscriptions.
func (r *ArticleRepository) ListUnreachable(ctx context.Context, userID uuid.UUID, candidates []uuid.UUID, remainingFeedIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	query := `
		SELECT c.id
		FROM unnest($1::uuid[]) AS c(id)
		WHERE NOT EXISTS (
			SELECT 1 FROM content.article_sources s
			WHERE s.article_id = c.id AND s.feed_id = ANY($2::uuid[])
		)`

	rows, err := querier(ctx, r.db).Query(ctx, query, candidates, remainingFeedIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute unreachable articles: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan article id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// DeleteOrphaned removes global articles that no feed links and no user
// retains. The guard clauses make the statement safe to call with any
// candidate set.
func (r *ArticleRepository) DeleteOrphaned(ctx context.Context, articleIDs []uuid.UUID) (int64, error) {
	if len(articleIDs) == 0 {
		return 0, nil
	}

	query := `
		DELETE FROM content.articles a
		WHERE a.id = ANY($1::uuid[])
		  AND NOT EXISTS (SELECT 1 FROM content.article_sources s WHERE s.article_id = a.id)
		  AND NOT EXISTS (SELECT 1 FROM personalization.user_articles ua WHERE ua.article_id = a.id)`

	tag, err := querier(ctx, r.db).Exec(ctx, query, articleIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned articles: %w", err)
	}

	return tag.RowsAffected(), nil
}

// IsPartitioned reports whether content.articles is range-partitioned.
// Plain test databases skip partition bookkeeping entirely.
func (r *ArticleRepository) IsPartitioned(ctx context.Context) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM pg_partitioned_table pt
			JOIN pg_class c ON c.oid = pt.partrelid
			JOIN pg_namespace n ON n.oid = c.relnamespace
			WHERE n.nspname = 'content' AND c.relname = 'articles'
		)`

	var partitioned bool
	if err := querier(ctx, r.db).QueryRow(ctx, query).Scan(&partitioned); err != nil {
		return false, fmt.Errorf("failed to inspect partitioning: %w", err)
	}

	return partitioned, nil
}

// EnsureMonthlyPartitions creates articles_YYYY_MM partitions for every
// given month. CREATE TABLE IF NOT EXISTS makes the call idempotent under
// concurrent ingestion.
func (r *ArticleRepository) EnsureMonthlyPartitions(ctx context.Context, months []time.Time) error {
	partitioned, err := r.IsPartitioned(ctx)
	if err != nil {
		return err
	}
	if !partitioned {
		return nil
	}

	for _, month := range months {
		if err := r.createPartition(ctx, month); err != nil {
			return err
		}
	}

	return nil
}

func (r *ArticleRepository) createPartition(ctx context.Context, month time.Time) error {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	// Partition DDL cannot take bind parameters; bounds are formatted from
	// time values, never from caller input.
	stmt := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS content.articles_%s PARTITION OF content.articles
		 FOR VALUES FROM ('%s') TO ('%s')`,
		start.Format("2006_01"),
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)

	if _, err := querier(ctx, r.db).Exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create partition for %s: %w", start.Format("2006-01"), err)
	}

	r.logger.DebugContext(ctx, "partition ensured", "month", start.Format("2006-01"))
	return nil
}

func (r *ArticleRepository) scanOne(ctx context.Context, query string, arg any) (*domain.Article, error) {
	var a domain.Article
	err := querier(ctx, r.db).QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.CanonicalURL, &a.Title, &a.Author, &a.Summary, &a.Content,
		&a.SourceTags, &a.MediaURL, &a.PlatformMetadata, &a.PublishedAt, &a.CreatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return &a, nil
}
