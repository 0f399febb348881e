package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lector/domain"
	"lector/mocks"
)

type subscriptionMocks struct {
	subs         *mocks.MockSubscriptionRepository
	feeds        *mocks.MockFeedRepository
	articles     *mocks.MockArticleRepository
	userArticles *mocks.MockUserArticleRepository
	tags         *mocks.MockTagRepository
	folders      *mocks.MockFolderRepository
	tx           *mocks.MockTxManager
}

func newSubscriptionUsecaseForTest(t *testing.T) (*SubscriptionUsecase, *subscriptionMocks) {
	ctrl := gomock.NewController(t)
	m := &subscriptionMocks{
		subs:         mocks.NewMockSubscriptionRepository(ctrl),
		feeds:        mocks.NewMockFeedRepository(ctrl),
		articles:     mocks.NewMockArticleRepository(ctrl),
		userArticles: mocks.NewMockUserArticleRepository(ctrl),
		tags:         mocks.NewMockTagRepository(ctrl),
		folders:      mocks.NewMockFolderRepository(ctrl),
		tx:           mocks.NewMockTxManager(ctrl),
	}
	uc := NewSubscriptionUsecase(m.subs, m.feeds, m.articles, m.userArticles, m.tags, m.folders, m.tx, 64, testLogger())
	return uc, m
}

// runTxInline makes the tx mock execute the unit of work on the same ctx.
func runTxInline(m *subscriptionMocks) {
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

func TestSubscriptionUsecase_SubscribeBackfillsRecentArticles(t *testing.T) {
	uc, m := newSubscriptionUsecaseForTest(t)
	userID := uuid.New()

	articleID := uuid.New()
	feed := testFeed(articleID)

	m.feeds.EXPECT().GetByID(gomock.Any(), feed.ID).Return(feed, nil)
	m.subs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.Created, nil)
	m.userArticles.EXPECT().BackfillForUser(gomock.Any(), userID, []uuid.UUID{articleID}).Return(int64(1), nil)

	article := &domain.Article{ID: articleID, SourceTags: []string{"news"}}
	m.articles.EXPECT().ListByIDs(gomock.Any(), []uuid.UUID{articleID}).Return([]*domain.Article{article}, nil)

	projection := &domain.UserArticle{ID: uuid.New(), UserID: userID, ArticleID: articleID}
	m.userArticles.EXPECT().Get(gomock.Any(), userID, articleID).Return(projection, nil)

	tag := &domain.UserTag{ID: uuid.New(), UserID: userID, Name: "news"}
	m.tags.EXPECT().GetOrCreate(gomock.Any(), userID, "news").Return(tag, domain.Created, nil)
	m.tags.EXPECT().LinkArticle(gomock.Any(), projection.ID, tag.ID).Return(domain.Created, nil)

	m.subs.EXPECT().RecalculateUnread(gomock.Any(), userID, gomock.Any()).Return(nil)

	sub, err := uc.Subscribe(context.Background(), userID, feed.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, feed.ID, sub.FeedID)
	assert.True(t, sub.IsActive)
}

func TestSubscriptionUsecase_SubscribeTwiceReturnsExisting(t *testing.T) {
	uc, m := newSubscriptionUsecaseForTest(t)
	userID := uuid.New()
	feed := testFeed()

	existing := &domain.Subscription{ID: uuid.New(), UserID: userID, FeedID: feed.ID}

	m.feeds.EXPECT().GetByID(gomock.Any(), feed.ID).Return(feed, nil)
	m.subs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.AlreadyExists, nil)
	m.subs.EXPECT().GetByUserAndFeed(gomock.Any(), userID, feed.ID).Return(existing, nil)

	sub, err := uc.Subscribe(context.Background(), userID, feed.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, sub.ID)
}

func TestSubscriptionUsecase_SubscribeInvalidFolderFallsToRoot(t *testing.T) {
	uc, m := newSubscriptionUsecaseForTest(t)
	userID := uuid.New()
	feed := testFeed()
	badFolder := uuid.New()

	m.feeds.EXPECT().GetByID(gomock.Any(), feed.ID).Return(feed, nil)
	m.folders.EXPECT().GetByID(gomock.Any(), userID, badFolder).Return(nil, domain.ErrFolderNotFound)
	m.subs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, sub *domain.Subscription) (domain.UpsertResult, error) {
			assert.Nil(t, sub.FolderID)
			return domain.Created, nil
		})
	m.subs.EXPECT().RecalculateUnread(gomock.Any(), userID, gomock.Any()).Return(nil)

	_, err := uc.Subscribe(context.Background(), userID, feed.ID, &badFolder, nil)
	require.NoError(t, err)
}

func TestSubscriptionUsecase_UnsubscribeCleansUnreachable(t *testing.T) {
	uc, m := newSubscriptionUsecaseForTest(t)
	userID := uuid.New()
	feedID := uuid.New()
	keptFeedID := uuid.New()
	subID := uuid.New()

	sub := &domain.Subscription{ID: subID, UserID: userID, FeedID: feedID}
	shared := uuid.New()     // also reachable through keptFeedID
	exclusive := uuid.New()  // only this feed carried it

	runTxInline(m)
	m.subs.EXPECT().GetByID(gomock.Any(), userID, subID).Return(sub, nil)
	m.articles.EXPECT().ListIDsByFeed(gomock.Any(), feedID).Return([]uuid.UUID{shared, exclusive}, nil)
	m.subs.EXPECT().ListFeedIDsByUser(gomock.Any(), userID).Return([]uuid.UUID{feedID, keptFeedID}, nil)
	m.articles.EXPECT().ListUnreachable(gomock.Any(), userID, []uuid.UUID{shared, exclusive}, []uuid.UUID{keptFeedID}).
		Return([]uuid.UUID{exclusive}, nil)
	m.tags.EXPECT().DeleteLinksForArticles(gomock.Any(), userID, []uuid.UUID{exclusive}).Return(int64(2), nil)
	m.userArticles.EXPECT().DeleteForUser(gomock.Any(), userID, []uuid.UUID{exclusive}).Return(int64(1), nil)
	m.subs.EXPECT().Delete(gomock.Any(), userID, subID).Return(nil)

	err := uc.Unsubscribe(context.Background(), userID, subID)
	require.NoError(t, err)
}

func TestSubscriptionUsecase_UnsubscribeCleanupFailureRollsBack(t *testing.T) {
	uc, m := newSubscriptionUsecaseForTest(t)
	userID := uuid.New()
	feedID := uuid.New()
	subID := uuid.New()

	sub := &domain.Subscription{ID: subID, UserID: userID, FeedID: feedID}
	orphan := uuid.New()

	// Tag links go first, then the projection delete dies mid-cleanup.
	// The whole unit of work must surface the failure; the subscription
	// row is never deleted on its own.
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
	m.subs.EXPECT().GetByID(gomock.Any(), userID, subID).Return(sub, nil)
	m.articles.EXPECT().ListIDsByFeed(gomock.Any(), feedID).Return([]uuid.UUID{orphan}, nil)
	m.subs.EXPECT().ListFeedIDsByUser(gomock.Any(), userID).Return([]uuid.UUID{feedID}, nil)
	m.articles.EXPECT().ListUnreachable(gomock.Any(), userID, []uuid.UUID{orphan}, gomock.Nil()).
		Return([]uuid.UUID{orphan}, nil)
	m.tags.EXPECT().DeleteLinksForArticles(gomock.Any(), userID, []uuid.UUID{orphan}).Return(int64(1), nil)
	m.userArticles.EXPECT().DeleteForUser(gomock.Any(), userID, []uuid.UUID{orphan}).
		Return(int64(0), errors.New("connection reset"))

	err := uc.Unsubscribe(context.Background(), userID, subID)
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")
}

func TestSubscriptionUsecase_RollbackImportEmptyBatch(t *testing.T) {
	uc, m := newSubscriptionUsecaseForTest(t)
	userID := uuid.New()
	importID := uuid.New()

	m.subs.EXPECT().ListByImportID(gomock.Any(), userID, importID).Return(nil, nil)

	removed, err := uc.RollbackImport(context.Background(), userID, importID)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSubscriptionUsecase_RollbackImportCleansWholeBatch(t *testing.T) {
	uc, m := newSubscriptionUsecaseForTest(t)
	userID := uuid.New()
	importID := uuid.New()
	feedA := uuid.New()
	feedB := uuid.New()

	subs := []*domain.Subscription{
		{ID: uuid.New(), UserID: userID, FeedID: feedA, ImportID: &importID},
		{ID: uuid.New(), UserID: userID, FeedID: feedB, ImportID: &importID},
	}
	articleA := uuid.New()
	articleB := uuid.New()

	runTxInline(m)
	m.subs.EXPECT().ListByImportID(gomock.Any(), userID, importID).Return(subs, nil)
	m.articles.EXPECT().ListIDsByFeed(gomock.Any(), feedA).Return([]uuid.UUID{articleA}, nil)
	m.articles.EXPECT().ListIDsByFeed(gomock.Any(), feedB).Return([]uuid.UUID{articleB}, nil)
	// Both feeds leave with the batch, so no remaining feeds shelter the articles.
	m.subs.EXPECT().ListFeedIDsByUser(gomock.Any(), userID).Return([]uuid.UUID{feedA, feedB}, nil)
	m.articles.EXPECT().ListUnreachable(gomock.Any(), userID, []uuid.UUID{articleA, articleB}, gomock.Nil()).
		Return([]uuid.UUID{articleA, articleB}, nil)
	m.tags.EXPECT().DeleteLinksForArticles(gomock.Any(), userID, gomock.Len(2)).Return(int64(0), nil)
	m.userArticles.EXPECT().DeleteForUser(gomock.Any(), userID, gomock.Len(2)).Return(int64(2), nil)
	m.subs.EXPECT().DeleteByImportID(gomock.Any(), userID, importID).Return(int64(2), nil)

	removed, err := uc.RollbackImport(context.Background(), userID, importID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}

func TestSubscriptionUsecase_UpdateMoveToMissingFolderFails(t *testing.T) {
	uc, m := newSubscriptionUsecaseForTest(t)
	userID := uuid.New()
	subID := uuid.New()
	badFolder := uuid.New()

	sub := &domain.Subscription{ID: subID, UserID: userID, FeedID: uuid.New()}
	m.subs.EXPECT().GetByID(gomock.Any(), userID, subID).Return(sub, nil)
	m.folders.EXPECT().GetByID(gomock.Any(), userID, badFolder).Return(nil, domain.ErrFolderNotFound)

	_, err := uc.Update(context.Background(), userID, subID, SubscriptionUpdate{FolderID: &badFolder})
	assert.ErrorIs(t, err, domain.ErrFolderNotFound)
}
