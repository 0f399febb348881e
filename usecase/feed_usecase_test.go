package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lector/config"
	"lector/domain"
	"lector/metrics"
	"lector/mocks"
	"lector/port"
	"lector/utils/feedparse"
	"lector/utils/htmlsanitize"
)

const refreshFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Refresh Feed</title>
    <link>https://example.com</link>
    <item>
      <title>Entry One</title>
      <link>https://example.com/one</link>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
    </item>
  </channel>
</rss>`

type feedMocksBundle struct {
	feeds        *mocks.MockFeedRepository
	userArticles *mocks.MockUserArticleRepository
	fetcher      *mocks.MockFeedFetchGateway
	discoverer   *mocks.MockFeedFetchGateway
	tx           *mocks.MockTxManager

	ingest *ingestMocks
}

func newFeedUsecaseForTest(t *testing.T) (*FeedUsecase, *feedMocksBundle) {
	ctrl := gomock.NewController(t)
	b := &feedMocksBundle{
		feeds:        mocks.NewMockFeedRepository(ctrl),
		userArticles: mocks.NewMockUserArticleRepository(ctrl),
		fetcher:      mocks.NewMockFeedFetchGateway(ctrl),
		discoverer:   mocks.NewMockFeedFetchGateway(ctrl),
		tx:           mocks.NewMockTxManager(ctrl),
		ingest: &ingestMocks{
			articles:     mocks.NewMockArticleRepository(ctrl),
			userArticles: mocks.NewMockUserArticleRepository(ctrl),
			subs:         mocks.NewMockSubscriptionRepository(ctrl),
			tags:         mocks.NewMockTagRepository(ctrl),
		},
	}

	ingest := NewIngestUsecase(b.ingest.articles, b.ingest.userArticles, b.ingest.subs, b.ingest.tags, 64, testLogger())
	parser := feedparse.New(htmlsanitize.New(), testLogger())

	uc := NewFeedUsecase(
		b.feeds, b.userArticles, b.fetcher, b.discoverer, parser, ingest, b.tx, metrics.New(),
		config.FeedConfig{RefreshBatchSize: 10, LatestArticlesLimit: 20},
		testLogger())
	return uc, b
}

// passthroughTx makes the tx mock run the unit of work on the same ctx.
func passthroughTx(b *feedMocksBundle) {
	b.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

func expectIngestOfOneNewArticle(b *feedMocksBundle, feedID uuid.UUID) {
	b.ingest.articles.EXPECT().IsPartitioned(gomock.Any()).Return(false, nil)
	b.ingest.articles.EXPECT().GetByCanonicalURLForUpdate(gomock.Any(), "https://example.com/one").
		Return(nil, domain.ErrArticleNotFound)
	b.ingest.articles.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	b.ingest.articles.EXPECT().LinkSource(gomock.Any(), gomock.Any(), feedID).Return(domain.Created, nil)
	b.ingest.userArticles.EXPECT().FanOutToSubscribers(gomock.Any(), feedID, gomock.Len(1)).Return(int64(0), nil)
}

func TestFeedUsecase_RefreshOneSuccess(t *testing.T) {
	uc, b := newFeedUsecaseForTest(t)
	feed := testFeed()
	passthroughTx(b)

	b.fetcher.EXPECT().Fetch(gomock.Any(), feed.FeedURL).
		Return(&port.FetchResult{Body: []byte(refreshFixture)}, nil)
	expectIngestOfOneNewArticle(b, feed.ID)
	b.feeds.EXPECT().UpdateFetchSuccess(gomock.Any(), feed.ID, gomock.Any(), gomock.Len(1)).Return(nil)

	status, newArticles, err := uc.RefreshOne(context.Background(), feed)
	require.NoError(t, err)
	assert.Equal(t, domain.RefreshSuccess, status)
	assert.Equal(t, 1, newArticles)
}

func TestFeedUsecase_RefreshOneSkipsInactive(t *testing.T) {
	uc, _ := newFeedUsecaseForTest(t)
	feed := testFeed()
	feed.IsActive = false

	status, _, err := uc.RefreshOne(context.Background(), feed)
	require.NoError(t, err)
	assert.Equal(t, domain.RefreshSkipped, status)
}

func TestFeedUsecase_RefreshOneFetchFailureBumpsCounters(t *testing.T) {
	uc, b := newFeedUsecaseForTest(t)
	feed := testFeed()

	b.fetcher.EXPECT().Fetch(gomock.Any(), feed.FeedURL).
		Return(nil, errors.New("connection refused"))
	b.feeds.EXPECT().UpdateFetchFailure(gomock.Any(), feed.ID, gomock.Any()).Return(nil)

	status, _, err := uc.RefreshOne(context.Background(), feed)
	assert.Error(t, err)
	assert.Equal(t, domain.RefreshError, status)
}

func TestFeedUsecase_RefreshOneIngestFailureRecordsOutsideTx(t *testing.T) {
	uc, b := newFeedUsecaseForTest(t)
	feed := testFeed()

	b.fetcher.EXPECT().Fetch(gomock.Any(), feed.FeedURL).
		Return(&port.FetchResult{Body: []byte(refreshFixture)}, nil)
	// The unit of work fails; the tx mock surfaces the rollback error.
	b.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected"))
	b.feeds.EXPECT().UpdateFetchFailure(gomock.Any(), feed.ID, "deadlock detected").Return(nil)

	status, _, err := uc.RefreshOne(context.Background(), feed)
	assert.Error(t, err)
	assert.Equal(t, domain.RefreshError, status)
}

func TestFeedUsecase_RefreshCycleCountsOutcomes(t *testing.T) {
	uc, b := newFeedUsecaseForTest(t)
	passthroughTx(b)

	healthy := testFeed()
	broken := testFeed()
	broken.FeedURL = "https://broken.example.com/feed.xml"

	b.feeds.EXPECT().ListRefreshable(gomock.Any()).Return([]*domain.Feed{healthy, broken}, nil)

	b.fetcher.EXPECT().Fetch(gomock.Any(), healthy.FeedURL).
		Return(&port.FetchResult{Body: []byte(refreshFixture)}, nil)
	expectIngestOfOneNewArticle(b, healthy.ID)
	b.feeds.EXPECT().UpdateFetchSuccess(gomock.Any(), healthy.ID, gomock.Any(), gomock.Any()).Return(nil)

	b.fetcher.EXPECT().Fetch(gomock.Any(), broken.FeedURL).
		Return(nil, errors.New("dns failure"))
	b.feeds.EXPECT().UpdateFetchFailure(gomock.Any(), broken.ID, gomock.Any()).Return(nil)

	result, err := uc.RefreshCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalFeeds)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.NewArticles)
}

func TestFeedUsecase_CreateFeedReturnsExisting(t *testing.T) {
	uc, b := newFeedUsecaseForTest(t)
	existing := testFeed()

	b.feeds.EXPECT().GetByURL(gomock.Any(), existing.FeedURL).Return(existing, nil)

	feed, err := uc.CreateFeed(context.Background(), existing.FeedURL)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, feed.ID)
}

func TestFeedUsecase_CreateFeedRejectsUnparseable(t *testing.T) {
	uc, b := newFeedUsecaseForTest(t)

	b.feeds.EXPECT().GetByURL(gomock.Any(), gomock.Any()).Return(nil, domain.ErrFeedNotFound)
	b.discoverer.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(&port.FetchResult{Body: []byte("<html>not a feed</html>")}, nil)

	_, err := uc.CreateFeed(context.Background(), "https://example.com/page")
	assert.Error(t, err)
}

func TestFeedUsecase_CreateFeedIngestFailureSurfaces(t *testing.T) {
	uc, b := newFeedUsecaseForTest(t)

	b.feeds.EXPECT().GetByURL(gomock.Any(), gomock.Any()).Return(nil, domain.ErrFeedNotFound)
	b.discoverer.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(&port.FetchResult{Body: []byte(refreshFixture)}, nil)
	b.feeds.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.Created, nil)
	// The first ingestion runs as one unit of work; when it rolls back the
	// creation surfaces the error instead of returning a half-ingested feed.
	b.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected"))

	_, err := uc.CreateFeed(context.Background(), "https://example.com/feed.xml")
	assert.ErrorContains(t, err, "deadlock detected")
}

func TestFeedUsecase_AutoMarkReadSweep(t *testing.T) {
	uc, b := newFeedUsecaseForTest(t)
	passthroughTx(b)

	b.userArticles.EXPECT().AutoMarkReadSweep(gomock.Any(), gomock.AssignableToTypeOf(time.Time{})).
		Return(int64(12), nil)

	swept, err := uc.AutoMarkReadSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), swept)
}
