package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"lector/domain"

	"github.com/google/uuid"
)

// TagRepository implements port.TagRepository. Tag names are unique per
// user; get-or-create resolves races via the unique-violation re-read.
type TagRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewTagRepository(db DBTX, logger *slog.Logger) *TagRepository {
	return &TagRepository{
		db:     db,
		logger: logger.With("component", "tag_repository"),
	}
}

const tagColumns = `id, user_id, name, article_count, created_at`

func (r *TagRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*domain.UserTag, domain.UpsertResult, error) {
	if tag, err := r.getByName(ctx, userID, name); err == nil {
		return tag, domain.AlreadyExists, nil
	} else if err != domain.ErrTagNotFound {
		return nil, domain.AlreadyExists, err
	}

	insert := `
		INSERT INTO personalization.user_tags (id, user_id, name, article_count, created_at)
		VALUES ($1, $2, $3, 0, now())`

	_, err := querier(ctx, r.db).Exec(ctx, insert, uuid.New(), userID, name)
	if err != nil {
		if IsUniqueViolation(err) {
			// Concurrent creator won; re-read.
			tag, rerr := r.getByName(ctx, userID, name)
			if rerr != nil {
				return nil, domain.AlreadyExists, rerr
			}
			return tag, domain.AlreadyExists, nil
		}
		return nil, domain.AlreadyExists, fmt.Errorf("failed to create tag: %w", err)
	}

	tag, err := r.getByName(ctx, userID, name)
	if err != nil {
		return nil, domain.Created, err
	}

	return tag, domain.Created, nil
}

func (r *TagRepository) GetByID(ctx context.Context, userID, tagID uuid.UUID) (*domain.UserTag, error) {
	query := `
		SELECT ` + tagColumns + `
		FROM personalization.user_tags
		WHERE id = $1 AND user_id = $2`

	var t domain.UserTag
	err := querier(ctx, r.db).QueryRow(ctx, query, tagID, userID).Scan(
		&t.ID, &t.UserID, &t.Name, &t.ArticleCount, &t.CreatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &t, nil
}

func (r *TagRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.UserTag, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM personalization.user_tags WHERE user_id = $1`
	if err := querier(ctx, r.db).QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}

	query := `
		SELECT ` + tagColumns + `
		FROM personalization.user_tags
		WHERE user_id = $1
		ORDER BY lower(name) ASC
		LIMIT $2 OFFSET $3`

	rows, err := querier(ctx, r.db).Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags, err := scanTags(rows)
	return tags, total, err
}

func (r *TagRepository) ListByIDs(ctx context.Context, userID uuid.UUID, tagIDs []uuid.UUID) ([]*domain.UserTag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + tagColumns + `
		FROM personalization.user_tags
		WHERE user_id = $1 AND id = ANY($2::uuid[])`

	rows, err := querier(ctx, r.db).Query(ctx, query, userID, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags by ids: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

func (r *TagRepository) Rename(ctx context.Context, userID, tagID uuid.UUID, name string) (*domain.UserTag, error) {
	query := `
		UPDATE personalization.user_tags
		SET name = $3
		WHERE id = $1 AND user_id = $2`

	tag, err := querier(ctx, r.db).Exec(ctx, query, tagID, userID, name)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, domain.ErrTagNameConflict
		}
		return nil, fmt.Errorf("failed to rename tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTagNotFound
	}

	return r.GetByID(ctx, userID, tagID)
}

func (r *TagRepository) Delete(ctx context.Context, userID, tagID uuid.UUID) error {
	// article_tags rows cascade via the FK.
	query := `
		DELETE FROM personalization.user_tags
		WHERE id = $1 AND user_id = $2`

	tag, err := querier(ctx, r.db).Exec(ctx, query, tagID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTagNotFound
	}

	return nil
}

func (r *TagRepository) LinkArticle(ctx context.Context, userArticleID, tagID uuid.UUID) (domain.UpsertResult, error) {
	query := `
		INSERT INTO personalization.article_tags (user_article_id, user_tag_id)
		VALUES ($1, $2)
		ON CONFLICT (user_article_id, user_tag_id) DO NOTHING`

	tag, err := querier(ctx, r.db).Exec(ctx, query, userArticleID, tagID)
	if err != nil {
		return domain.AlreadyExists, fmt.Errorf("failed to link article tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.AlreadyExists, nil
	}

	if err := r.bumpArticleCount(ctx, tagID, 1); err != nil {
		return domain.Created, err
	}

	return domain.Created, nil
}

func (r *TagRepository) UnlinkArticle(ctx context.Context, userArticleID, tagID uuid.UUID) error {
	query := `
		DELETE FROM personalization.article_tags
		WHERE user_article_id = $1 AND user_tag_id = $2`

	tag, err := querier(ctx, r.db).Exec(ctx, query, userArticleID, tagID)
	if err != nil {
		return fmt.Errorf("failed to unlink article tag: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return r.bumpArticleCount(ctx, tagID, -1)
	}

	return nil
}

func (r *TagRepository) TagIDsForUserArticle(ctx context.Context, userArticleID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT user_tag_id FROM personalization.article_tags
		WHERE user_article_id = $1`

	rows, err := querier(ctx, r.db).Query(ctx, query, userArticleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list article tags: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan tag id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// DeleteLinksForArticles drops every tag link the user holds on the given
// articles and keeps article_count consistent, used by unsubscribe cleanup.
func (r *TagRepository) DeleteLinksForArticles(ctx context.Context, userID uuid.UUID, articleIDs []uuid.UUID) (int64, error) {
	if len(articleIDs) == 0 {
		return 0, nil
	}

	query := `
		WITH removed AS (
			DELETE FROM personalization.article_tags at
			USING personalization.user_articles ua
			WHERE ua.id = at.user_article_id
			  AND ua.user_id = $1
			  AND ua.article_id = ANY($2::uuid[])
			RETURNING at.user_tag_id
		)
		UPDATE personalization.user_tags t
		SET article_count = GREATEST(article_count - r.cnt, 0)
		FROM (SELECT user_tag_id, COUNT(*) AS cnt FROM removed GROUP BY user_tag_id) r
		WHERE t.id = r.user_tag_id`

	tag, err := querier(ctx, r.db).Exec(ctx, query, userID, articleIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete article tag links: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *TagRepository) getByName(ctx context.Context, userID uuid.UUID, name string) (*domain.UserTag, error) {
	query := `
		SELECT ` + tagColumns + `
		FROM personalization.user_tags
		WHERE user_id = $1 AND name = $2`

	var t domain.UserTag
	err := querier(ctx, r.db).QueryRow(ctx, query, userID, name).Scan(
		&t.ID, &t.UserID, &t.Name, &t.ArticleCount, &t.CreatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag by name: %w", err)
	}

	return &t, nil
}

func (r *TagRepository) bumpArticleCount(ctx context.Context, tagID uuid.UUID, delta int) error {
	query := `
		UPDATE personalization.user_tags
		SET article_count = GREATEST(article_count + $2, 0)
		WHERE id = $1`

	if _, err := querier(ctx, r.db).Exec(ctx, query, tagID, delta); err != nil {
		return fmt.Errorf("failed to adjust tag article count: %w", err)
	}

	return nil
}

func scanTags(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*domain.UserTag, error) {
	var tags []*domain.UserTag
	for rows.Next() {
		var t domain.UserTag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.ArticleCount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &t)
	}

	return tags, rows.Err()
}
