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

// SubscriptionUsecase owns the user-feed join: subscribe with backfill,
// display updates, reachability-aware unsubscribe, and OPML batch
// rollback.
type SubscriptionUsecase struct {
	subRepo         port.SubscriptionRepository
	feedRepo        port.FeedRepository
	articleRepo     port.ArticleRepository
	userArticleRepo port.UserArticleRepository
	tagRepo         port.TagRepository
	folderRepo      port.FolderRepository
	txManager       port.TxManager
	maxTagLength    int
	logger          *slog.Logger
}

func NewSubscriptionUsecase(
	subRepo port.SubscriptionRepository,
	feedRepo port.FeedRepository,
	articleRepo port.ArticleRepository,
	userArticleRepo port.UserArticleRepository,
	tagRepo port.TagRepository,
	folderRepo port.FolderRepository,
	txManager port.TxManager,
	maxTagLength int,
	logger *slog.Logger,
) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		subRepo:         subRepo,
		feedRepo:        feedRepo,
		articleRepo:     articleRepo,
		userArticleRepo: userArticleRepo,
		tagRepo:         tagRepo,
		folderRepo:      folderRepo,
		txManager:       txManager,
		maxTagLength:    maxTagLength,
		logger:          logger.With("component", "subscription_usecase"),
	}
}

// Subscribe joins the user to a feed, backfills projection rows from the
// feed's recent articles, and propagates their source tags.
func (uc *SubscriptionUsecase) Subscribe(ctx context.Context, userID, feedID uuid.UUID, folderID, importID *uuid.UUID) (*domain.Subscription, error) {
	feed, err := uc.feedRepo.GetByID(ctx, feedID)
	if err != nil {
		return nil, err
	}

	if folderID != nil {
		if _, err := uc.folderRepo.GetByID(ctx, userID, *folderID); err != nil {
			// Invalid folder falls through to root rather than failing
			// the subscribe.
			uc.logger.Warn("folder not found on subscribe, using root",
				"user_id", userID, "folder_id", *folderID)
			folderID = nil
		}
	}

	now := time.Now()
	sub := &domain.Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		FeedID:    feedID,
		FolderID:  folderID,
		IsActive:  true,
		ImportID:  importID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := uc.subRepo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}
	if created == domain.AlreadyExists {
		return uc.subRepo.GetByUserAndFeed(ctx, userID, feedID)
	}

	if len(feed.LatestArticles) > 0 {
		if err := uc.backfill(ctx, userID, feed.LatestArticles); err != nil {
			return nil, err
		}
	}

	if err := uc.subRepo.RecalculateUnread(ctx, userID, &feedID); err != nil {
		return nil, err
	}

	return sub, nil
}

// backfill creates projection rows for the feed's recent articles and
// replays their source tags for the new subscriber.
func (uc *SubscriptionUsecase) backfill(ctx context.Context, userID uuid.UUID, articleIDs []uuid.UUID) error {
	if _, err := uc.userArticleRepo.BackfillForUser(ctx, userID, articleIDs); err != nil {
		return err
	}

	articles, err := uc.articleRepo.ListByIDs(ctx, articleIDs)
	if err != nil {
		return err
	}

	for _, article := range articles {
		if len(article.SourceTags) == 0 {
			continue
		}

		userArticle, err := uc.userArticleRepo.Get(ctx, userID, article.ID)
		if err != nil {
			continue
		}

		for _, name := range article.SourceTags {
			sanitized, err := domain.SanitizeTagName(name, uc.maxTagLength)
			if err != nil {
				continue
			}

			tag, _, err := uc.tagRepo.GetOrCreate(ctx, userID, sanitized)
			if err != nil {
				return err
			}
			if _, err := uc.tagRepo.LinkArticle(ctx, userArticle.ID, tag.ID); err != nil {
				return err
			}
		}
	}

	return nil
}

// List pages the caller's subscriptions with folder filter and ordering.
func (uc *SubscriptionUsecase) List(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID, sortOrder string, limit, offset int) ([]*domain.SubscriptionView, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.subRepo.ListByUser(ctx, userID, folderID, sortOrder, limit, offset)
}

// SubscriptionUpdate carries the mutable display attributes; nil fields
// stay untouched. ClearFolder moves the subscription to the root.
type SubscriptionUpdate struct {
	Title       *string
	FolderID    *uuid.UUID
	ClearFolder bool
	IsPinned    *bool
}

// Update renames, moves or pins a subscription.
func (uc *SubscriptionUsecase) Update(ctx context.Context, userID, subscriptionID uuid.UUID, update SubscriptionUpdate) (*domain.Subscription, error) {
	sub, err := uc.subRepo.GetByID(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		if *update.Title == "" {
			sub.Title = nil
		} else {
			sub.Title = update.Title
		}
	}

	if update.ClearFolder {
		sub.FolderID = nil
	} else if update.FolderID != nil {
		if _, err := uc.folderRepo.GetByID(ctx, userID, *update.FolderID); err != nil {
			return nil, err
		}
		sub.FolderID = update.FolderID
	}

	if update.IsPinned != nil {
		sub.IsPinned = *update.IsPinned
	}

	sub.UpdatedAt = time.Now()
	if err := uc.subRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// Unsubscribe removes the subscription and cleans up every per-user row
// for articles no longer reachable through the user's remaining feeds.
// Global articles are never touched. The cleanup and the subscription
// delete commit together; a failure anywhere rolls all of it back.
func (uc *SubscriptionUsecase) Unsubscribe(ctx context.Context, userID, subscriptionID uuid.UUID) error {
	sub, err := uc.subRepo.GetByID(ctx, userID, subscriptionID)
	if err != nil {
		return err
	}

	return uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := uc.cleanupUnreachable(txCtx, userID, []uuid.UUID{sub.FeedID}); err != nil {
			return err
		}
		return uc.subRepo.Delete(txCtx, userID, subscriptionID)
	})
}

// RollbackImport removes every subscription created by an OPML batch,
// with the same reachability-aware cleanup, then deletes the rows in one
// statement. The whole rollback runs in one transaction.
func (uc *SubscriptionUsecase) RollbackImport(ctx context.Context, userID, importID uuid.UUID) (int64, error) {
	subs, err := uc.subRepo.ListByImportID(ctx, userID, importID)
	if err != nil {
		return 0, err
	}
	if len(subs) == 0 {
		return 0, nil
	}

	removedFeeds := make([]uuid.UUID, 0, len(subs))
	for _, sub := range subs {
		removedFeeds = append(removedFeeds, sub.FeedID)
	}

	var removed int64
	err = uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := uc.cleanupUnreachable(txCtx, userID, removedFeeds); err != nil {
			return err
		}
		var err error
		removed, err = uc.subRepo.DeleteByImportID(txCtx, userID, importID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// cleanupUnreachable deletes tag links and projection rows for articles
// linked to the removed feeds but not reachable via any feed the user
// keeps.
func (uc *SubscriptionUsecase) cleanupUnreachable(ctx context.Context, userID uuid.UUID, removedFeedIDs []uuid.UUID) error {
	removed := make(map[uuid.UUID]bool, len(removedFeedIDs))
	var candidates []uuid.UUID
	for _, feedID := range removedFeedIDs {
		removed[feedID] = true

		ids, err := uc.articleRepo.ListIDsByFeed(ctx, feedID)
		if err != nil {
			return err
		}
		candidates = append(candidates, ids...)
	}
	if len(candidates) == 0 {
		return nil
	}

	allFeeds, err := uc.subRepo.ListFeedIDsByUser(ctx, userID)
	if err != nil {
		return err
	}

	var remaining []uuid.UUID
	for _, feedID := range allFeeds {
		if !removed[feedID] {
			remaining = append(remaining, feedID)
		}
	}

	unreachable, err := uc.articleRepo.ListUnreachable(ctx, userID, candidates, remaining)
	if err != nil {
		return err
	}
	if len(unreachable) == 0 {
		return nil
	}

	if _, err := uc.tagRepo.DeleteLinksForArticles(ctx, userID, unreachable); err != nil {
		return err
	}
	if _, err := uc.userArticleRepo.DeleteForUser(ctx, userID, unreachable); err != nil {
		return err
	}

	uc.logger.Info("unsubscribe cleanup removed projection rows",
		"user_id", userID, "articles", len(unreachable))
	return nil
}

// Get returns one subscription owned by the caller.
func (uc *SubscriptionUsecase) Get(ctx context.Context, userID, subscriptionID uuid.UUID) (*domain.Subscription, error) {
	sub, err := uc.subRepo.GetByID(ctx, userID, subscriptionID)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}
