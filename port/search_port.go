package port

//go:generate mockgen -source=search_port.go -destination=../mocks/mock_search_port.go -package=mocks

import (
	"context"

	"lector/domain"

	"github.com/google/uuid"
)

// SearchRepository runs per-type full-text + trigram searches. Hits carry
// raw relevance scores for the universal merge.
type SearchRepository interface {
	SearchFeeds(ctx context.Context, userID uuid.UUID, query string, limit, offset int) (*domain.SearchPage, error)
	SearchTags(ctx context.Context, userID uuid.UUID, query string, limit, offset int) (*domain.SearchPage, error)
	SearchFolders(ctx context.Context, userID uuid.UUID, query string, limit, offset int) (*domain.SearchPage, error)
	SearchArticles(ctx context.Context, userID uuid.UUID, query string, limit, offset int) (*domain.SearchPage, error)
}
