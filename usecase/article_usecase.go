package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lector/domain"
	"lector/port"
)

// ArticleUsecase serves per-user article listings and mutations on the
// read/bookmark/tag projection. Global articles are read-only here.
type ArticleUsecase struct {
	userArticleRepo port.UserArticleRepository
	tagRepo         port.TagRepository
	subRepo         port.SubscriptionRepository
	logger          *slog.Logger
}

func NewArticleUsecase(
	userArticleRepo port.UserArticleRepository,
	tagRepo port.TagRepository,
	subRepo port.SubscriptionRepository,
	logger *slog.Logger,
) *ArticleUsecase {
	return &ArticleUsecase{
		userArticleRepo: userArticleRepo,
		tagRepo:         tagRepo,
		subRepo:         subRepo,
		logger:          logger.With("component", "article_usecase"),
	}
}

// ArticlePage is one cursor page of the caller's article stream.
type ArticlePage struct {
	Items      []*domain.ArticleView `json:"items"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

// List pages the caller's articles newest-first under the given filter.
// A malformed cursor silently restarts from the first page.
func (uc *ArticleUsecase) List(ctx context.Context, userID uuid.UUID, filter domain.ArticleFilter, encodedCursor string, limit int) (*ArticlePage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	cursor := domain.DecodeCursor(encodedCursor)

	// Fetch one extra row to know whether a next page exists.
	views, err := uc.userArticleRepo.ListView(ctx, userID, filter, cursor, limit+1)
	if err != nil {
		return nil, err
	}

	page := &ArticlePage{Items: views}
	if len(views) > limit {
		page.Items = views[:limit]
		last := page.Items[len(page.Items)-1]
		next := domain.Cursor{PublishedAt: last.PublishedAt, ID: last.Article.ID}
		page.NextCursor = next.Encode()
	}

	return page, nil
}

// Get returns the article detail for the caller. Opening an unread
// article marks it read.
func (uc *ArticleUsecase) Get(ctx context.Context, userID, articleID uuid.UUID) (*domain.ArticleView, error) {
	view, err := uc.userArticleRepo.GetView(ctx, userID, articleID)
	if err != nil {
		return nil, err
	}

	if !view.IsRead {
		if err := uc.userArticleRepo.SetRead(ctx, userID, articleID, true); err != nil {
			return nil, err
		}
		if err := uc.subRepo.RecalculateUnread(ctx, userID, nil); err != nil {
			return nil, err
		}

		view.IsRead = true
		now := time.Now()
		view.ReadAt = &now
	}

	return view, nil
}

// SetRead flips the read flag and refreshes denormalized unread counts.
func (uc *ArticleUsecase) SetRead(ctx context.Context, userID, articleID uuid.UUID, isRead bool) error {
	if _, err := uc.userArticleRepo.GetOrCreate(ctx, userID, articleID); err != nil {
		return err
	}

	if err := uc.userArticleRepo.SetRead(ctx, userID, articleID, isRead); err != nil {
		return err
	}

	return uc.subRepo.RecalculateUnread(ctx, userID, nil)
}

// SetReadLater flips the bookmark flag. Bookmarks do not affect unread
// counts.
func (uc *ArticleUsecase) SetReadLater(ctx context.Context, userID, articleID uuid.UUID, readLater bool) error {
	if _, err := uc.userArticleRepo.GetOrCreate(ctx, userID, articleID); err != nil {
		return err
	}
	return uc.userArticleRepo.SetReadLater(ctx, userID, articleID, readLater)
}

// BulkMarkRead marks every article matching the filter as read and
// returns how many rows changed.
func (uc *ArticleUsecase) BulkMarkRead(ctx context.Context, userID uuid.UUID, filter domain.ArticleFilter) (int64, error) {
	marked, err := uc.userArticleRepo.BulkMarkRead(ctx, userID, filter)
	if err != nil {
		return 0, err
	}

	if marked > 0 {
		if err := uc.subRepo.RecalculateUnread(ctx, userID, nil); err != nil {
			return 0, err
		}
	}

	uc.logger.Info("bulk mark-read", "user_id", userID, "rows", marked)
	return marked, nil
}

// TagSyncResult reports which tag links a sync added and removed.
type TagSyncResult struct {
	Added   []uuid.UUID `json:"added"`
	Removed []uuid.UUID `json:"removed"`
}

// SyncTags replaces the tag set on the caller's projection of an article.
// Every requested tag must exist and belong to the caller.
func (uc *ArticleUsecase) SyncTags(ctx context.Context, userID, articleID uuid.UUID, tagIDs []uuid.UUID) (*TagSyncResult, error) {
	desired := make(map[uuid.UUID]bool, len(tagIDs))
	for _, tagID := range tagIDs {
		if desired[tagID] {
			continue
		}
		if _, err := uc.tagRepo.GetByID(ctx, userID, tagID); err != nil {
			if errors.Is(err, domain.ErrTagNotFound) {
				return nil, domain.ErrTagNotOwned
			}
			return nil, err
		}
		desired[tagID] = true
	}

	userArticle, err := uc.userArticleRepo.GetOrCreate(ctx, userID, articleID)
	if err != nil {
		return nil, err
	}

	currentIDs, err := uc.tagRepo.TagIDsForUserArticle(ctx, userArticle.ID)
	if err != nil {
		return nil, err
	}
	current := make(map[uuid.UUID]bool, len(currentIDs))
	for _, tagID := range currentIDs {
		current[tagID] = true
	}

	result := &TagSyncResult{}

	for tagID := range desired {
		if current[tagID] {
			continue
		}
		if _, err := uc.tagRepo.LinkArticle(ctx, userArticle.ID, tagID); err != nil {
			return nil, err
		}
		result.Added = append(result.Added, tagID)
	}

	for _, tagID := range currentIDs {
		if desired[tagID] {
			continue
		}
		if err := uc.tagRepo.UnlinkArticle(ctx, userArticle.ID, tagID); err != nil {
			return nil, err
		}
		result.Removed = append(result.Removed, tagID)
	}

	return result, nil
}
