package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lector/domain"
	"lector/port"
	apperrors "lector/utils/errors"
)

const (
	universalPerTypeLimit = 10
	universalResultLimit  = 20
	maxSearchQueryLength  = 200
)

// SearchUsecase runs per-type and universal searches over the caller's
// feeds, folders, tags and articles.
type SearchUsecase struct {
	searchRepo port.SearchRepository
	logger     *slog.Logger
}

func NewSearchUsecase(searchRepo port.SearchRepository, logger *slog.Logger) *SearchUsecase {
	return &SearchUsecase{
		searchRepo: searchRepo,
		logger:     logger.With("component", "search_usecase"),
	}
}

func (uc *SearchUsecase) validateQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" || len([]rune(query)) > maxSearchQueryLength {
		return "", apperrors.NewValidationContextError(
			"search query must be 1..200 characters",
			"usecase", "search_usecase", "validate_query", nil)
	}
	return query, nil
}

// SearchType runs an offset-paginated search over one entity class.
func (uc *SearchUsecase) SearchType(ctx context.Context, userID uuid.UUID, searchType domain.SearchType, query string, limit, offset int) (*domain.SearchPage, error) {
	query, err := uc.validateQuery(query)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	switch searchType {
	case domain.SearchTypeFeed:
		return uc.searchRepo.SearchFeeds(ctx, userID, query, limit, offset)
	case domain.SearchTypeTag:
		return uc.searchRepo.SearchTags(ctx, userID, query, limit, offset)
	case domain.SearchTypeFolder:
		return uc.searchRepo.SearchFolders(ctx, userID, query, limit, offset)
	case domain.SearchTypeArticle:
		return uc.searchRepo.SearchArticles(ctx, userID, query, limit, offset)
	default:
		return nil, apperrors.NewValidationContextError(
			"unknown search type",
			"usecase", "search_usecase", "search_type", map[string]interface{}{
				"type": string(searchType),
			})
	}
}

// Universal searches all four types in parallel and merges the hits into
// one weighted, relevance-ordered list. A failing type is logged and
// contributes nothing; the other types still return.
func (uc *SearchUsecase) Universal(ctx context.Context, userID uuid.UUID, query string) ([]domain.UniversalResult, error) {
	query, err := uc.validateQuery(query)
	if err != nil {
		return nil, err
	}

	searches := map[domain.SearchType]func(context.Context) (*domain.SearchPage, error){
		domain.SearchTypeFeed: func(ctx context.Context) (*domain.SearchPage, error) {
			return uc.searchRepo.SearchFeeds(ctx, userID, query, universalPerTypeLimit, 0)
		},
		domain.SearchTypeTag: func(ctx context.Context) (*domain.SearchPage, error) {
			return uc.searchRepo.SearchTags(ctx, userID, query, universalPerTypeLimit, 0)
		},
		domain.SearchTypeFolder: func(ctx context.Context) (*domain.SearchPage, error) {
			return uc.searchRepo.SearchFolders(ctx, userID, query, universalPerTypeLimit, 0)
		},
		domain.SearchTypeArticle: func(ctx context.Context) (*domain.SearchPage, error) {
			return uc.searchRepo.SearchArticles(ctx, userID, query, universalPerTypeLimit, 0)
		},
	}

	var mu sync.Mutex
	pages := make(map[domain.SearchType][]domain.SearchHit, len(searches))

	group, groupCtx := errgroup.WithContext(ctx)
	for searchType, search := range searches {
		searchType, search := searchType, search
		group.Go(func() error {
			page, err := search(groupCtx)
			if err != nil {
				uc.logger.Warn("universal search type failed",
					"type", searchType, "error", err)
				return nil
			}

			mu.Lock()
			pages[searchType] = page.Hits
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	type scoredHit struct {
		hit   domain.SearchHit
		score float64
	}

	var merged []scoredHit
	for searchType, hits := range pages {
		weight := domain.SearchTypeWeights[searchType]
		for _, hit := range normalizeScores(hits) {
			merged = append(merged, scoredHit{hit: hit, score: hit.Score * weight})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].score > merged[j].score
	})

	if len(merged) > universalResultLimit {
		merged = merged[:universalResultLimit]
	}

	results := make([]domain.UniversalResult, 0, len(merged))
	for _, scored := range merged {
		results = append(results, domain.UniversalResult{
			Type:    scored.hit.Type,
			ID:      scored.hit.ID,
			Title:   scored.hit.Title,
			Payload: scored.hit.Payload,
		})
	}
	return results, nil
}

// normalizeScores min-max rescales one type's raw scores into [0,1] so
// types with different scoring scales merge fairly. A single hit, or a
// flat score distribution, normalizes to 1.
func normalizeScores(hits []domain.SearchHit) []domain.SearchHit {
	if len(hits) == 0 {
		return hits
	}

	min, max := hits[0].Score, hits[0].Score
	for _, hit := range hits[1:] {
		if hit.Score < min {
			min = hit.Score
		}
		if hit.Score > max {
			max = hit.Score
		}
	}

	normalized := make([]domain.SearchHit, len(hits))
	copy(normalized, hits)

	span := max - min
	for i := range normalized {
		if span == 0 {
			normalized[i].Score = 1
		} else {
			normalized[i].Score = (normalized[i].Score - min) / span
		}
	}
	return normalized
}
