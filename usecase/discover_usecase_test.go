package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lector/config"
	"lector/domain"
	"lector/mocks"
)

type discoverMocks struct {
	feeds   *mocks.MockFeedRepository
	subs    *mocks.MockSubscriptionRepository
	folders *mocks.MockFolderRepository
	queue   *mocks.MockJobQueue
	status  *mocks.MockJobStatusStore

	subscriptions *subscriptionMocks
}

func newDiscoverUsecaseForTest(t *testing.T, devMode bool) (*DiscoverUsecase, *discoverMocks) {
	ctrl := gomock.NewController(t)
	m := &discoverMocks{
		feeds:   mocks.NewMockFeedRepository(ctrl),
		subs:    mocks.NewMockSubscriptionRepository(ctrl),
		folders: mocks.NewMockFolderRepository(ctrl),
		queue:   mocks.NewMockJobQueue(ctrl),
		status:  mocks.NewMockJobStatusStore(ctrl),
		subscriptions: &subscriptionMocks{
			subs:         mocks.NewMockSubscriptionRepository(ctrl),
			feeds:        mocks.NewMockFeedRepository(ctrl),
			articles:     mocks.NewMockArticleRepository(ctrl),
			userArticles: mocks.NewMockUserArticleRepository(ctrl),
			tags:         mocks.NewMockTagRepository(ctrl),
			folders:      mocks.NewMockFolderRepository(ctrl),
			tx:           mocks.NewMockTxManager(ctrl),
		},
	}
	runTxInline(m.subscriptions)

	subUC := NewSubscriptionUsecase(
		m.subscriptions.subs, m.subscriptions.feeds, m.subscriptions.articles,
		m.subscriptions.userArticles, m.subscriptions.tags, m.subscriptions.folders,
		m.subscriptions.tx, 64, testLogger())
	jobUC := NewJobUsecase(m.queue, m.status, config.JobConfig{}, testLogger())

	uc := NewDiscoverUsecase(m.feeds, m.subs, m.folders, subUC, jobUC, m.queue, devMode, testLogger())
	return uc, m
}

func TestDiscoverUsecase_AlreadySubscribed(t *testing.T) {
	uc, m := newDiscoverUsecaseForTest(t, false)
	userID := uuid.New()
	feed := testFeed()

	sub := &domain.Subscription{ID: uuid.New(), UserID: userID, FeedID: feed.ID}

	m.feeds.EXPECT().GetByURL(gomock.Any(), feed.FeedURL).Return(feed, nil)
	m.subs.EXPECT().GetByUserAndFeed(gomock.Any(), userID, feed.ID).Return(sub, nil)

	result, err := uc.Discover(context.Background(), userID, feed.FeedURL, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscoverExisting, result.Outcome)
	assert.Equal(t, sub.ID, result.Subscription.ID)
}

func TestDiscoverUsecase_MoveToRequestedFolder(t *testing.T) {
	uc, m := newDiscoverUsecaseForTest(t, false)
	userID := uuid.New()
	feed := testFeed()
	folderID := uuid.New()

	sub := &domain.Subscription{ID: uuid.New(), UserID: userID, FeedID: feed.ID}

	m.feeds.EXPECT().GetByURL(gomock.Any(), feed.FeedURL).Return(feed, nil)
	m.subs.EXPECT().GetByUserAndFeed(gomock.Any(), userID, feed.ID).Return(sub, nil)
	m.folders.EXPECT().GetByID(gomock.Any(), userID, folderID).
		Return(&domain.Folder{ID: folderID, UserID: userID, Depth: 1}, nil)
	m.subs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	result, err := uc.Discover(context.Background(), userID, feed.FeedURL, &folderID)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscoverMoved, result.Outcome)
	require.NotNil(t, result.Subscription.FolderID)
	assert.Equal(t, folderID, *result.Subscription.FolderID)
}

func TestDiscoverUsecase_InvalidFolderKeepsExisting(t *testing.T) {
	uc, m := newDiscoverUsecaseForTest(t, false)
	userID := uuid.New()
	feed := testFeed()
	badFolder := uuid.New()

	sub := &domain.Subscription{ID: uuid.New(), UserID: userID, FeedID: feed.ID}

	m.feeds.EXPECT().GetByURL(gomock.Any(), feed.FeedURL).Return(feed, nil)
	m.subs.EXPECT().GetByUserAndFeed(gomock.Any(), userID, feed.ID).Return(sub, nil)
	m.folders.EXPECT().GetByID(gomock.Any(), userID, badFolder).Return(nil, domain.ErrFolderNotFound)

	result, err := uc.Discover(context.Background(), userID, feed.FeedURL, &badFolder)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscoverExisting, result.Outcome)
	assert.Nil(t, result.Subscription.FolderID)
}

func TestDiscoverUsecase_KnownFeedSubscribes(t *testing.T) {
	uc, m := newDiscoverUsecaseForTest(t, false)
	userID := uuid.New()
	feed := testFeed()

	m.feeds.EXPECT().GetByURL(gomock.Any(), feed.FeedURL).Return(feed, nil)
	m.subs.EXPECT().GetByUserAndFeed(gomock.Any(), userID, feed.ID).
		Return(nil, domain.ErrSubscriptionNotFound)

	m.subscriptions.feeds.EXPECT().GetByID(gomock.Any(), feed.ID).Return(feed, nil)
	m.subscriptions.subs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.Created, nil)
	m.subscriptions.subs.EXPECT().RecalculateUnread(gomock.Any(), userID, gomock.Any()).Return(nil)

	result, err := uc.Discover(context.Background(), userID, feed.FeedURL, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscoverSubscribed, result.Outcome)
}

func TestDiscoverUsecase_UnknownFeedQueuesJob(t *testing.T) {
	uc, m := newDiscoverUsecaseForTest(t, false)
	userID := uuid.New()

	m.feeds.EXPECT().GetByURL(gomock.Any(), "https://example.com/new.xml").
		Return(nil, domain.ErrFeedNotFound)
	m.queue.EXPECT().AcquireOnce(gomock.Any(), "create_subscribe:"+userID.String()+":https://example.com/new.xml", gomock.Any()).
		Return(true, nil)
	m.status.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any(), domain.JobFeedCreateAndSubscribe, gomock.Any(), 0).Return(nil)

	result, err := uc.Discover(context.Background(), userID, "https://example.com/new.xml", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscoverPending, result.Outcome)
	assert.NotNil(t, result.JobID)
}

func TestDiscoverUsecase_DuplicateSubmitStaysPending(t *testing.T) {
	uc, m := newDiscoverUsecaseForTest(t, false)
	userID := uuid.New()

	m.feeds.EXPECT().GetByURL(gomock.Any(), gomock.Any()).Return(nil, domain.ErrFeedNotFound)
	m.queue.EXPECT().AcquireOnce(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

	result, err := uc.Discover(context.Background(), userID, "https://example.com/new.xml", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscoverPending, result.Outcome)
	assert.Nil(t, result.JobID)
}

func TestDiscoverUsecase_DevModeSkipsIdempotencyKey(t *testing.T) {
	uc, m := newDiscoverUsecaseForTest(t, true)
	userID := uuid.New()

	m.feeds.EXPECT().GetByURL(gomock.Any(), gomock.Any()).Return(nil, domain.ErrFeedNotFound)
	// No AcquireOnce expectation: development re-enqueues freely.
	m.status.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any(), domain.JobFeedCreateAndSubscribe, gomock.Any(), 0).Return(nil)

	result, err := uc.Discover(context.Background(), userID, "https://example.com/new.xml", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscoverPending, result.Outcome)
}

func TestDiscoverUsecase_RejectsUnparseableURL(t *testing.T) {
	uc, _ := newDiscoverUsecaseForTest(t, false)

	_, err := uc.Discover(context.Background(), uuid.New(), "   ", nil)
	assert.Error(t, err)
}
