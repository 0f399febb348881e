package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lector/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testFeed(latest ...uuid.UUID) *domain.Feed {
	return &domain.Feed{
		ID:             uuid.New(),
		FeedURL:        "https://example.com/feed.xml",
		Title:          "Example Feed",
		IsActive:       true,
		LatestArticles: latest,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func strPtr(s string) *string { return &s }
