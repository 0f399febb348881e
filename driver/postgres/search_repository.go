package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lector/domain"

	"github.com/google/uuid"
)

// SearchRepository implements port.SearchRepository. Each type combines a
// prefix tsquery match with trigram similarity:
//
//	rank = tsmatch::int + 0.5*similarity + 0.5 when the name starts with q
type SearchRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewSearchRepository(db DBTX, logger *slog.Logger) *SearchRepository {
	return &SearchRepository{
		db:     db,
		logger: logger.With("component", "search_repository"),
	}
}

// toPrefixTSQuery turns user input into a prefix tsquery: single words
// become `word:*`, multi-word input ORs the prefixes.
func toPrefixTSQuery(query string) string {
	words := strings.Fields(query)
	if len(words) == 0 {
		return ""
	}

	prefixes := make([]string, 0, len(words))
	for _, w := range words {
		// tsquery syntax characters would break the expression
		cleaned := strings.Map(func(r rune) rune {
			switch r {
			case '&', '|', '!', '(', ')', ':', '*', '\'', '\\':
				return -1
			}
			return r
		}, w)
		if cleaned == "" {
			continue
		}
		prefixes = append(prefixes, cleaned+":*")
	}

	return strings.Join(prefixes, " | ")
}

const searchRankExpr = `
	(to_tsvector('simple', %[1]s) @@ to_tsquery('simple', $2))::int
	+ 0.5 * similarity(%[1]s, $3)
	+ CASE WHEN %[1]s ILIKE $3 || '%%' THEN 0.5 ELSE 0 END`

const searchMatchExpr = `
	(to_tsvector('simple', %[1]s) @@ to_tsquery('simple', $2)
	 OR similarity(%[1]s, $3) > 0.1)`

func (r *SearchRepository) SearchFeeds(ctx context.Context, userID uuid.UUID, query string, limit, offset int) (*domain.SearchPage, error) {
	nameExpr := `COALESCE(NULLIF(s.title, ''), f.title)`
	base := `
		FROM personalization.subscriptions s
		JOIN content.feeds f ON f.id = s.feed_id
		WHERE s.user_id = $1 AND ` + fmt.Sprintf(searchMatchExpr, nameExpr)

	sql := fmt.Sprintf(`
		SELECT s.id, %[1]s AS name, f.feed_url, (%[2]s) AS rank %[3]s
		ORDER BY rank DESC, name ASC
		LIMIT $4 OFFSET $5`, nameExpr, fmt.Sprintf(searchRankExpr, nameExpr), base)

	countSQL := `SELECT COUNT(*) ` + base

	return r.run(ctx, domain.SearchTypeFeed, sql, countSQL, userID, query, limit, offset,
		func(hit *domain.SearchHit, extra *string) {
			hit.Payload = map[string]any{"feed_url": deref(extra)}
		})
}

func (r *SearchRepository) SearchTags(ctx context.Context, userID uuid.UUID, query string, limit, offset int) (*domain.SearchPage, error) {
	base := `
		FROM personalization.user_tags t
		WHERE t.user_id = $1 AND ` + fmt.Sprintf(searchMatchExpr, "t.name")

	sql := fmt.Sprintf(`
		SELECT t.id, t.name, t.article_count::text, (%s) AS rank %s
		ORDER BY rank DESC, t.name ASC
		LIMIT $4 OFFSET $5`, fmt.Sprintf(searchRankExpr, "t.name"), base)

	countSQL := `SELECT COUNT(*) ` + base

	return r.run(ctx, domain.SearchTypeTag, sql, countSQL, userID, query, limit, offset,
		func(hit *domain.SearchHit, extra *string) {
			hit.Payload = map[string]any{"article_count": deref(extra)}
		})
}

func (r *SearchRepository) SearchFolders(ctx context.Context, userID uuid.UUID, query string, limit, offset int) (*domain.SearchPage, error) {
	base := `
		FROM personalization.folders fo
		WHERE fo.user_id = $1 AND ` + fmt.Sprintf(searchMatchExpr, "fo.name")

	sql := fmt.Sprintf(`
		SELECT fo.id, fo.name, fo.parent_id::text, (%s) AS rank %s
		ORDER BY rank DESC, fo.name ASC
		LIMIT $4 OFFSET $5`, fmt.Sprintf(searchRankExpr, "fo.name"), base)

	countSQL := `SELECT COUNT(*) ` + base

	return r.run(ctx, domain.SearchTypeFolder, sql, countSQL, userID, query, limit, offset,
		func(hit *domain.SearchHit, extra *string) {
			if extra != nil {
				hit.Payload = map[string]any{"parent_id": *extra}
			}
		})
}

func (r *SearchRepository) SearchArticles(ctx context.Context, userID uuid.UUID, query string, limit, offset int) (*domain.SearchPage, error) {
	base := `
		FROM personalization.user_articles ua
		JOIN content.articles a ON a.id = ua.article_id
		WHERE ua.user_id = $1 AND ` + fmt.Sprintf(searchMatchExpr, "a.title")

	sql := fmt.Sprintf(`
		SELECT a.id, a.title, a.canonical_url, (%s) AS rank %s
		ORDER BY rank DESC, a.published_at DESC
		LIMIT $4 OFFSET $5`, fmt.Sprintf(searchRankExpr, "a.title"), base)

	countSQL := `SELECT COUNT(*) ` + base

	return r.run(ctx, domain.SearchTypeArticle, sql, countSQL, userID, query, limit, offset,
		func(hit *domain.SearchHit, extra *string) {
			hit.Payload = map[string]any{"url": deref(extra)}
		})
}

func (r *SearchRepository) run(
	ctx context.Context,
	searchType domain.SearchType,
	sql, countSQL string,
	userID uuid.UUID,
	query string,
	limit, offset int,
	decorate func(hit *domain.SearchHit, extra *string),
) (*domain.SearchPage, error) {
	tsQuery := toPrefixTSQuery(query)
	if tsQuery == "" {
		return &domain.SearchPage{Hits: []domain.SearchHit{}, Limit: limit, Offset: offset}, nil
	}

	var total int
	if err := querier(ctx, r.db).QueryRow(ctx, countSQL, userID, tsQuery, query).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count %s search: %w", searchType, err)
	}

	rows, err := querier(ctx, r.db).Query(ctx, sql, userID, tsQuery, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to run %s search: %w", searchType, err)
	}
	defer rows.Close()

	hits := []domain.SearchHit{}
	for rows.Next() {
		var hit domain.SearchHit
		var extra *string
		if err := rows.Scan(&hit.ID, &hit.Title, &extra, &hit.Score); err != nil {
			return nil, fmt.Errorf("failed to scan %s hit: %w", searchType, err)
		}
		hit.Type = searchType
		decorate(&hit, extra)
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.SearchPage{Hits: hits, Total: total, Limit: limit, Offset: offset}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
