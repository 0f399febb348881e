package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lector/config"
	"lector/domain"
	"lector/metrics"
	"lector/port"
	apperrors "lector/utils/errors"
	"lector/utils/feedparse"
	"lector/utils/urlutil"
)

// FeedUsecase owns the feed lifecycle: creation, single refresh, the
// scheduled refresh cycle, orphan deactivation and the auto-mark-read
// sweep.
type FeedUsecase struct {
	feedRepo        port.FeedRepository
	userArticleRepo port.UserArticleRepository
	fetchGateway    port.FeedFetchGateway
	// discoverGateway serves first-time fetches of unknown URLs; unlike
	// the refresh gateway it consults robots.txt before fetching.
	discoverGateway port.FeedFetchGateway
	parser          *feedparse.Parser
	ingest          *IngestUsecase
	txManager       port.TxManager
	metrics         *metrics.Metrics
	cfg             config.FeedConfig
	logger          *slog.Logger
}

func NewFeedUsecase(
	feedRepo port.FeedRepository,
	userArticleRepo port.UserArticleRepository,
	fetchGateway port.FeedFetchGateway,
	discoverGateway port.FeedFetchGateway,
	parser *feedparse.Parser,
	ingest *IngestUsecase,
	txManager port.TxManager,
	m *metrics.Metrics,
	cfg config.FeedConfig,
	logger *slog.Logger,
) *FeedUsecase {
	return &FeedUsecase{
		feedRepo:        feedRepo,
		userArticleRepo: userArticleRepo,
		fetchGateway:    fetchGateway,
		discoverGateway: discoverGateway,
		parser:          parser,
		ingest:          ingest,
		txManager:       txManager,
		metrics:         m,
		cfg:             cfg,
		logger:          logger.With("component", "feed_usecase"),
	}
}

// CreateFeed fetches, parses, validates and persists a feed, then ingests
// its current entries. Unparseable documents reject the creation.
func (uc *FeedUsecase) CreateFeed(ctx context.Context, feedURL string) (*domain.Feed, error) {
	canonical := urlutil.NormalizeURL(feedURL)

	if existing, err := uc.feedRepo.GetByURL(ctx, canonical); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrFeedNotFound) {
		return nil, err
	}

	fetched, err := uc.discoverGateway.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	meta, entries, err := uc.parser.Parse(fetched.Body)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	feed := &domain.Feed{
		ID:          uuid.New(),
		FeedURL:     canonical,
		Title:       meta.Title,
		Description: meta.Description,
		Language:    meta.Language,
		SiteURL:     meta.Website,
		FeedType:    meta.FeedType,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := uc.feedRepo.Create(ctx, feed)
	if err != nil {
		return nil, err
	}
	if created == domain.AlreadyExists {
		// Concurrent creator won; their refresh handles ingestion.
		return uc.feedRepo.GetByURL(ctx, canonical)
	}

	// First ingestion commits atomically, same as a scheduled refresh.
	err = uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return uc.ingestAndRecord(txCtx, feed.ID, entries)
	})
	if err != nil {
		return nil, err
	}

	return uc.feedRepo.GetByID(ctx, feed.ID)
}

// RefreshOne fetches and ingests a single feed. Ingestion runs in its
// own transaction so a mid-batch failure rolls the whole batch back;
// error bookkeeping on the feed row commits separately afterwards.
func (uc *FeedUsecase) RefreshOne(ctx context.Context, feed *domain.Feed) (domain.RefreshStatus, int, error) {
	if !feed.IsActive {
		return domain.RefreshSkipped, 0, nil
	}

	fetched, err := uc.fetchGateway.Fetch(ctx, feed.FeedURL)
	if err != nil {
		uc.recordFailure(ctx, feed.ID, err)
		return domain.RefreshError, 0, err
	}

	_, entries, err := uc.parser.Parse(fetched.Body)
	if err != nil {
		uc.recordFailure(ctx, feed.ID, err)
		return domain.RefreshError, 0, err
	}

	newArticles := 0
	err = uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		result, err := uc.ingest.ProcessEntries(txCtx, feed.ID, entries)
		if err != nil {
			return err
		}
		newArticles = len(result.NewArticleIDs)

		lastUpdate := newestPublished(entries)
		latest := boundIDs(result.AllArticleIDs, uc.cfg.LatestArticlesLimit)
		return uc.feedRepo.UpdateFetchSuccess(txCtx, feed.ID, lastUpdate, latest)
	})
	if err != nil {
		uc.recordFailure(ctx, feed.ID, err)
		return domain.RefreshError, 0, err
	}

	return domain.RefreshSuccess, newArticles, nil
}

// RefreshCycle runs the scheduled refresh over every active feed with at
// least one subscriber, in batches. Per-feed failures never abort the
// cycle.
func (uc *FeedUsecase) RefreshCycle(ctx context.Context) (*domain.RefreshCycleResult, error) {
	started := time.Now()
	uc.metrics.RefreshCycleRunning.Set(1)
	defer uc.metrics.RefreshCycleRunning.Set(0)

	feeds, err := uc.feedRepo.ListRefreshable(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.RefreshCycleResult{TotalFeeds: len(feeds)}
	var mu sync.Mutex

	batchSize := uc.cfg.RefreshBatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	for start := 0; start < len(feeds); start += batchSize {
		end := start + batchSize
		if end > len(feeds) {
			end = len(feeds)
		}

		group, groupCtx := errgroup.WithContext(ctx)
		for _, feed := range feeds[start:end] {
			feed := feed
			group.Go(func() error {
				status, newArticles := uc.refreshFeed(groupCtx, feed)

				mu.Lock()
				switch status {
				case domain.RefreshSuccess, domain.RefreshSkipped:
					result.Succeeded++
					result.NewArticles += newArticles
				default:
					result.Failed++
				}
				mu.Unlock()

				uc.metrics.RefreshFeedsProcessed.WithLabelValues(string(status)).Inc()
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(started)
	uc.metrics.RefreshNewArticles.Add(float64(result.NewArticles))
	uc.metrics.RefreshCycleDuration.Observe(result.Duration.Seconds())

	uc.logger.Info("refresh cycle finished",
		"total", result.TotalFeeds,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"new_articles", result.NewArticles,
		"duration", result.Duration)

	return result, nil
}

func (uc *FeedUsecase) refreshFeed(ctx context.Context, feed *domain.Feed) (domain.RefreshStatus, int) {
	status, newArticles, err := uc.RefreshOne(ctx, feed)
	if err != nil && status == domain.RefreshUnknown {
		uc.logger.Error("feed refresh in unknown state", "feed_id", feed.ID, "error", err)
	}
	return status, newArticles
}

// DeactivateOrphans marks feeds without subscriptions inactive (02:00 job).
func (uc *FeedUsecase) DeactivateOrphans(ctx context.Context) (int64, error) {
	var deactivated int64
	err := uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		deactivated, err = uc.feedRepo.DeactivateOrphans(txCtx)
		return err
	})
	if err != nil {
		return 0, err
	}

	uc.logger.Info("orphaned feeds deactivated", "count", deactivated)
	return deactivated, nil
}

// AutoMarkReadSweep applies per-user cutoffs to unread rows (03:00 job).
func (uc *FeedUsecase) AutoMarkReadSweep(ctx context.Context) (int64, error) {
	var swept int64
	err := uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		swept, err = uc.userArticleRepo.AutoMarkReadSweep(txCtx, time.Now())
		return err
	})
	if err != nil {
		return 0, err
	}

	uc.logger.Info("auto-mark-read sweep finished", "rows", swept)
	return swept, nil
}

// ListAll pages through every feed for the internal ops API.
func (uc *FeedUsecase) ListAll(ctx context.Context, limit, offset int) ([]*domain.Feed, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.feedRepo.ListAll(ctx, limit, offset)
}

func (uc *FeedUsecase) ingestAndRecord(ctx context.Context, feedID uuid.UUID, entries []domain.EntryRecord) error {
	result, err := uc.ingest.ProcessEntries(ctx, feedID, entries)
	if err != nil {
		return err
	}

	lastUpdate := newestPublished(entries)
	latest := boundIDs(result.AllArticleIDs, uc.cfg.LatestArticlesLimit)
	return uc.feedRepo.UpdateFetchSuccess(ctx, feedID, lastUpdate, latest)
}

func (uc *FeedUsecase) recordFailure(ctx context.Context, feedID uuid.UUID, cause error) {
	message := cause.Error()
	var appErr *apperrors.AppContextError
	if errors.As(cause, &appErr) {
		message = appErr.Message
	}

	if err := uc.feedRepo.UpdateFetchFailure(ctx, feedID, message); err != nil {
		uc.logger.Error("failed to record fetch failure", "feed_id", feedID, "error", err)
	}
}

func newestPublished(entries []domain.EntryRecord) *time.Time {
	var newest *time.Time
	for i := range entries {
		published := entries[i].PublishedAt
		if published == nil {
			continue
		}
		if newest == nil || published.After(*newest) {
			newest = published
		}
	}
	return newest
}

func boundIDs(ids []uuid.UUID, limit int) []uuid.UUID {
	if limit > 0 && len(ids) > limit {
		return ids[:limit]
	}
	return ids
}
