package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lector/domain"
	"lector/port"
	apperrors "lector/utils/errors"
	"lector/utils/urlutil"
)

// createSubscribeKeyTTL bounds how long a discover for the same user and
// URL is deduplicated while the background job runs.
const createSubscribeKeyTTL = 5 * time.Minute

// DiscoverUsecase implements one-call feed discovery: a single URL submit
// resolves to an existing subscription, an immediate subscribe, or a
// queued create-and-subscribe job.
type DiscoverUsecase struct {
	feedRepo      port.FeedRepository
	subRepo       port.SubscriptionRepository
	folderRepo    port.FolderRepository
	subscriptions *SubscriptionUsecase
	jobs          *JobUsecase
	queue         port.JobQueue
	devMode       bool
	logger        *slog.Logger
}

func NewDiscoverUsecase(
	feedRepo port.FeedRepository,
	subRepo port.SubscriptionRepository,
	folderRepo port.FolderRepository,
	subscriptions *SubscriptionUsecase,
	jobs *JobUsecase,
	queue port.JobQueue,
	devMode bool,
	logger *slog.Logger,
) *DiscoverUsecase {
	return &DiscoverUsecase{
		feedRepo:      feedRepo,
		subRepo:       subRepo,
		folderRepo:    folderRepo,
		subscriptions: subscriptions,
		jobs:          jobs,
		queue:         queue,
		devMode:       devMode,
		logger:        logger.With("component", "discover_usecase"),
	}
}

// DiscoverResult is what POST /discover returns: the outcome plus the
// subscription (synchronous paths) or the job id (queued path).
type DiscoverResult struct {
	Outcome      domain.DiscoverOutcome `json:"outcome"`
	Subscription *domain.Subscription   `json:"subscription,omitempty"`
	JobID        *uuid.UUID             `json:"job_id,omitempty"`
}

// Discover resolves a submitted URL. Known and subscribed returns the
// subscription (moving it when a different folder is requested); known
// and unsubscribed subscribes with backfill; unknown queues a
// create-and-subscribe job guarded by a per-user-URL idempotency key.
func (uc *DiscoverUsecase) Discover(ctx context.Context, userID uuid.UUID, feedURL string, folderID *uuid.UUID) (*DiscoverResult, error) {
	canonical := urlutil.NormalizeURL(feedURL)
	if canonical == "" {
		return nil, apperrors.NewValidationContextError(
			"feed url is not a valid http(s) url",
			"usecase", "discover_usecase", "discover", map[string]interface{}{
				"url": feedURL,
			})
	}

	feed, err := uc.feedRepo.GetByURL(ctx, canonical)
	switch {
	case err == nil:
		return uc.discoverKnown(ctx, userID, feed, folderID)
	case errors.Is(err, domain.ErrFeedNotFound):
		return uc.discoverUnknown(ctx, userID, canonical, folderID)
	default:
		return nil, err
	}
}

func (uc *DiscoverUsecase) discoverKnown(ctx context.Context, userID uuid.UUID, feed *domain.Feed, folderID *uuid.UUID) (*DiscoverResult, error) {
	sub, err := uc.subRepo.GetByUserAndFeed(ctx, userID, feed.ID)
	switch {
	case err == nil:
		return uc.maybeMove(ctx, userID, sub, folderID)

	case errors.Is(err, domain.ErrSubscriptionNotFound):
		created, err := uc.subscriptions.Subscribe(ctx, userID, feed.ID, folderID, nil)
		if err != nil {
			return nil, err
		}
		return &DiscoverResult{Outcome: domain.DiscoverSubscribed, Subscription: created}, nil

	default:
		return nil, err
	}
}

// maybeMove relocates an existing subscription when the caller asked for
// a different folder. An invalid folder id is logged and ignored rather
// than failing the discover.
func (uc *DiscoverUsecase) maybeMove(ctx context.Context, userID uuid.UUID, sub *domain.Subscription, folderID *uuid.UUID) (*DiscoverResult, error) {
	if folderID == nil || (sub.FolderID != nil && *sub.FolderID == *folderID) {
		return &DiscoverResult{Outcome: domain.DiscoverExisting, Subscription: sub}, nil
	}

	if _, err := uc.folderRepo.GetByID(ctx, userID, *folderID); err != nil {
		uc.logger.Warn("requested folder not found, keeping subscription in place",
			"user_id", userID, "folder_id", *folderID)
		return &DiscoverResult{Outcome: domain.DiscoverExisting, Subscription: sub}, nil
	}

	sub.FolderID = folderID
	sub.UpdatedAt = time.Now()
	if err := uc.subRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	return &DiscoverResult{Outcome: domain.DiscoverMoved, Subscription: sub}, nil
}

func (uc *DiscoverUsecase) discoverUnknown(ctx context.Context, userID uuid.UUID, canonical string, folderID *uuid.UUID) (*DiscoverResult, error) {
	// One in-flight create per (user, url). Development skips the guard so
	// repeated manual submits re-enqueue immediately.
	if !uc.devMode {
		key := fmt.Sprintf("create_subscribe:%s:%s", userID, canonical)
		acquired, err := uc.queue.AcquireOnce(ctx, key, createSubscribeKeyTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			uc.logger.Info("create-and-subscribe already in flight",
				"user_id", userID, "url", canonical)
			return &DiscoverResult{Outcome: domain.DiscoverPending}, nil
		}
	}

	payload := map[string]string{
		"user_id":  userID.String(),
		"feed_url": canonical,
	}
	if folderID != nil {
		payload["folder_id"] = folderID.String()
	}

	record, err := uc.jobs.Publish(ctx, domain.JobFeedCreateAndSubscribe, payload)
	if err != nil {
		return nil, err
	}

	jobID := record.ID
	return &DiscoverResult{Outcome: domain.DiscoverPending, JobID: &jobID}, nil
}
