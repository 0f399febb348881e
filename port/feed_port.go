package port

//go:generate mockgen -source=feed_port.go -destination=../mocks/mock_feed_port.go -package=mocks

import (
	"context"
	"time"

	"lector/domain"

	"github.com/google/uuid"
)

// FeedRepository defines global feed data access.
type FeedRepository interface {
	Create(ctx context.Context, feed *domain.Feed) (domain.UpsertResult, error)
	GetByID(ctx context.Context, feedID uuid.UUID) (*domain.Feed, error)
	GetByURL(ctx context.Context, feedURL string) (*domain.Feed, error)
	// ListRefreshable returns active feeds with at least one subscription.
	ListRefreshable(ctx context.Context) ([]*domain.Feed, error)
	ListAll(ctx context.Context, limit, offset int) ([]*domain.Feed, error)
	UpdateFetchSuccess(ctx context.Context, feedID uuid.UUID, lastUpdate *time.Time, latestArticles []uuid.UUID) error
	UpdateFetchFailure(ctx context.Context, feedID uuid.UUID, message string) error
	// DeactivateOrphans marks feeds without subscriptions inactive in one
	// statement and reports how many rows changed.
	DeactivateOrphans(ctx context.Context) (int64, error)
}

// ArticleRepository defines global article data access, including the
// partition bookkeeping the monthly range layout requires.
type ArticleRepository interface {
	// GetByCanonicalURLForUpdate locks the row for the caller's transaction.
	GetByCanonicalURLForUpdate(ctx context.Context, canonicalURL string) (*domain.Article, error)
	GetByCanonicalURL(ctx context.Context, canonicalURL string) (*domain.Article, error)
	Insert(ctx context.Context, article *domain.Article) error
	ListByIDs(ctx context.Context, articleIDs []uuid.UUID) ([]*domain.Article, error)
	// LinkSource records the (article, feed) pair; AlreadyExists when the
	// link was present.
	LinkSource(ctx context.Context, articleID, feedID uuid.UUID) (domain.UpsertResult, error)
	ListIDsByFeed(ctx context.Context, feedID uuid.UUID) ([]uuid.UUID, error)
	// ListUnreachable filters candidates down to articles no longer linked
	// to any feed the user still subscribes to, excluding excludeFeedID.
	ListUnreachable(ctx context.Context, userID uuid.UUID, candidates []uuid.UUID, excludeFeedIDs []uuid.UUID) ([]uuid.UUID, error)
	DeleteOrphaned(ctx context.Context, articleIDs []uuid.UUID) (int64, error)

	IsPartitioned(ctx context.Context) (bool, error)
	EnsureMonthlyPartitions(ctx context.Context, months []time.Time) error
}

// UserArticleRepository defines the per-user article projection.
type UserArticleRepository interface {
	// FanOutToSubscribers inserts missing projection rows for every active
	// subscriber of the feed in one ON CONFLICT DO NOTHING statement.
	FanOutToSubscribers(ctx context.Context, feedID uuid.UUID, articleIDs []uuid.UUID) (int64, error)
	// BackfillForUser inserts missing projection rows for one user.
	BackfillForUser(ctx context.Context, userID uuid.UUID, articleIDs []uuid.UUID) (int64, error)
	GetOrCreate(ctx context.Context, userID, articleID uuid.UUID) (*domain.UserArticle, error)
	Get(ctx context.Context, userID, articleID uuid.UUID) (*domain.UserArticle, error)
	SetRead(ctx context.Context, userID, articleID uuid.UUID, isRead bool) error
	SetReadLater(ctx context.Context, userID, articleID uuid.UUID, readLater bool) error
	BulkMarkRead(ctx context.Context, userID uuid.UUID, filter domain.ArticleFilter) (int64, error)
	DeleteForUser(ctx context.Context, userID uuid.UUID, articleIDs []uuid.UUID) (int64, error)
	// AutoMarkReadSweep applies per-user cutoffs (7/14/30 days) against
	// unread rows in a single statement joined on preferences.
	AutoMarkReadSweep(ctx context.Context, now time.Time) (int64, error)

	ListView(ctx context.Context, userID uuid.UUID, filter domain.ArticleFilter, cursor *domain.Cursor, limit int) ([]*domain.ArticleView, error)
	GetView(ctx context.Context, userID, articleID uuid.UUID) (*domain.ArticleView, error)
}

// SubscriptionRepository defines the user-feed join.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) (domain.UpsertResult, error)
	GetByID(ctx context.Context, userID, subscriptionID uuid.UUID) (*domain.Subscription, error)
	GetByUserAndFeed(ctx context.Context, userID, feedID uuid.UUID) (*domain.Subscription, error)
	ListByUser(ctx context.Context, userID uuid.UUID, folderID *uuid.UUID, sortOrder string, limit, offset int) ([]*domain.SubscriptionView, int, error)
	ListByImportID(ctx context.Context, userID, importID uuid.UUID) ([]*domain.Subscription, error)
	ListFeedIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ActiveSubscriberIDs(ctx context.Context, feedID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, sub *domain.Subscription) error
	Delete(ctx context.Context, userID, subscriptionID uuid.UUID) error
	// DeleteByImportID removes a whole import batch in one statement.
	DeleteByImportID(ctx context.Context, userID, importID uuid.UUID) (int64, error)
	// RecalculateUnread recomputes unread_count from the projection rows.
	// A nil feedID recomputes every subscription the user holds.
	RecalculateUnread(ctx context.Context, userID uuid.UUID, feedID *uuid.UUID) error
}

// FolderRepository defines the user folder tree.
type FolderRepository interface {
	Create(ctx context.Context, folder *domain.Folder) error
	GetByID(ctx context.Context, userID, folderID uuid.UUID) (*domain.Folder, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Folder, error)
	CountChildren(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID) (int, error)
	// IsDescendant reports whether candidate sits beneath ancestor.
	IsDescendant(ctx context.Context, userID, ancestorID, candidateID uuid.UUID) (bool, error)
	// MaxSubtreeDepth returns the deepest depth found in the folder's
	// subtree, the folder itself included.
	MaxSubtreeDepth(ctx context.Context, userID, folderID uuid.UUID) (int, error)
	// ShiftSubtreeDepth adds delta to the depth of every descendant of the
	// folder. The folder's own row is written by Update.
	ShiftSubtreeDepth(ctx context.Context, userID, folderID uuid.UUID, delta int) error
	Update(ctx context.Context, folder *domain.Folder) error
	Delete(ctx context.Context, userID, folderID uuid.UUID) error
	// Tree returns the folder hierarchy with unread rollups via one
	// recursive CTE.
	Tree(ctx context.Context, userID uuid.UUID) ([]*domain.FolderNode, error)
}

// TagRepository defines the user-scoped tag set and article-tag links.
type TagRepository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*domain.UserTag, domain.UpsertResult, error)
	GetByID(ctx context.Context, userID, tagID uuid.UUID) (*domain.UserTag, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.UserTag, int, error)
	ListByIDs(ctx context.Context, userID uuid.UUID, tagIDs []uuid.UUID) ([]*domain.UserTag, error)
	Rename(ctx context.Context, userID, tagID uuid.UUID, name string) (*domain.UserTag, error)
	Delete(ctx context.Context, userID, tagID uuid.UUID) error
	LinkArticle(ctx context.Context, userArticleID, tagID uuid.UUID) (domain.UpsertResult, error)
	UnlinkArticle(ctx context.Context, userArticleID, tagID uuid.UUID) error
	TagIDsForUserArticle(ctx context.Context, userArticleID uuid.UUID) ([]uuid.UUID, error)
	// DeleteLinksForArticles drops every tag link the user holds on the
	// given articles (unsubscribe cleanup).
	DeleteLinksForArticles(ctx context.Context, userID uuid.UUID, articleIDs []uuid.UUID) (int64, error)
}

// OpmlRepository tracks OPML import batches.
type OpmlRepository interface {
	Create(ctx context.Context, imp *domain.OpmlImport) error
	GetByID(ctx context.Context, userID, importID uuid.UUID) (*domain.OpmlImport, error)
	Update(ctx context.Context, imp *domain.OpmlImport) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.OpmlImport, error)
}
