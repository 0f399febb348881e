package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"lector/domain"
	redisdrv "lector/driver/redis"
	"lector/usecase"
)

// HandlerFunc executes one job. The returned result map is stored on the
// job record; a non-nil notification is delivered to the payload's user.
type HandlerFunc func(ctx context.Context, payload map[string]string) (map[string]interface{}, *domain.Notification, error)

// Registry maps job types to their handlers.
type Registry map[domain.JobType]HandlerFunc

// NewRegistry wires every job type to the usecase that performs it.
func NewRegistry(
	feeds *usecase.FeedUsecase,
	subscriptions *usecase.SubscriptionUsecase,
	opml *usecase.OpmlUsecase,
	queue *redisdrv.Queue,
	logger *slog.Logger,
) Registry {
	h := &handlers{
		feeds:         feeds,
		subscriptions: subscriptions,
		opml:          opml,
		queue:         queue,
		logger:        logger.With("component", "job_handlers"),
	}

	return Registry{
		domain.JobFeedCreateAndSubscribe: h.createAndSubscribe,
		domain.JobOpmlImport:             h.opmlImport,
		domain.JobOpmlExport:             h.opmlExport,
		domain.JobFeedRefreshCycle:       h.refreshCycle,
		domain.JobFeedCleanup:            h.feedCleanup,
		domain.JobAutoMarkRead:           h.autoMarkRead,
	}
}

type handlers struct {
	feeds         *usecase.FeedUsecase
	subscriptions *usecase.SubscriptionUsecase
	opml          *usecase.OpmlUsecase
	queue         *redisdrv.Queue
	logger        *slog.Logger
}

func (h *handlers) createAndSubscribe(ctx context.Context, payload map[string]string) (map[string]interface{}, *domain.Notification, error) {
	userID, err := payloadUUID(payload, "user_id")
	if err != nil {
		return nil, nil, err
	}
	feedURL := payload["feed_url"]
	if feedURL == "" {
		return nil, nil, fmt.Errorf("payload missing feed_url")
	}

	// The discovery endpoint holds an idempotency slot while this job is
	// queued. Release it whichever way the job ends so the user can retry.
	defer func() {
		key := fmt.Sprintf("create_subscribe:%s:%s", userID, feedURL)
		if err := h.queue.ReleaseOnce(context.WithoutCancel(ctx), key); err != nil {
			h.logger.Warn("failed to release idempotency key", "key", key, "error", err)
		}
	}()

	var folderID *uuid.UUID
	if raw, ok := payload["folder_id"]; ok {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("payload folder_id: %w", err)
		}
		folderID = &id
	}

	feed, err := h.feeds.CreateFeed(ctx, feedURL)
	if err != nil {
		return nil, failureNote("Subscription failed", domain.JobFeedCreateAndSubscribe,
			fmt.Sprintf("Could not fetch %s", feedURL)), err
	}

	sub, err := h.subscriptions.Subscribe(ctx, userID, feed.ID, folderID, nil)
	if err != nil {
		return nil, failureNote("Subscription failed", domain.JobFeedCreateAndSubscribe,
			fmt.Sprintf("Could not subscribe to %s", feed.Title)), err
	}

	result := map[string]interface{}{
		"feed_id":         feed.ID.String(),
		"subscription_id": sub.ID.String(),
	}
	note := &domain.Notification{
		Title:   "Feed subscribed",
		Action:  string(domain.JobFeedCreateAndSubscribe),
		Message: fmt.Sprintf("Subscribed to %s", feed.Title),
	}
	return result, note, nil
}

func (h *handlers) opmlImport(ctx context.Context, payload map[string]string) (map[string]interface{}, *domain.Notification, error) {
	userID, err := payloadUUID(payload, "user_id")
	if err != nil {
		return nil, nil, err
	}
	importID, err := payloadUUID(payload, "import_id")
	if err != nil {
		return nil, nil, err
	}

	if err := h.opml.RunImport(ctx, userID, importID); err != nil {
		return nil, failureNote("Import failed", domain.JobOpmlImport,
			"The OPML import could not be completed"), err
	}

	record, err := h.opml.Status(ctx, userID, importID)
	if err != nil {
		return nil, nil, err
	}

	result := map[string]interface{}{
		"total":     record.Total,
		"imported":  record.Imported,
		"failed":    record.Failed,
		"duplicate": record.Duplicate,
	}
	note := &domain.Notification{
		Title:   "Import finished",
		Action:  string(domain.JobOpmlImport),
		Message: fmt.Sprintf("Imported %d of %d feeds", record.Imported, record.Total),
	}
	return result, note, nil
}

func (h *handlers) opmlExport(ctx context.Context, payload map[string]string) (map[string]interface{}, *domain.Notification, error) {
	userID, err := payloadUUID(payload, "user_id")
	if err != nil {
		return nil, nil, err
	}

	if err := h.opml.RunExport(ctx, userID); err != nil {
		return nil, failureNote("Export failed", domain.JobOpmlExport,
			"The OPML export could not be completed"), err
	}

	note := &domain.Notification{
		Title:   "Export ready",
		Action:  string(domain.JobOpmlExport),
		Message: "Your OPML export is ready to download",
	}
	return nil, note, nil
}

func (h *handlers) refreshCycle(ctx context.Context, _ map[string]string) (map[string]interface{}, *domain.Notification, error) {
	cycle, err := h.feeds.RefreshCycle(ctx)
	if err != nil {
		return nil, nil, err
	}
	return map[string]interface{}{
		"total_feeds":  cycle.TotalFeeds,
		"succeeded":    cycle.Succeeded,
		"failed":       cycle.Failed,
		"new_articles": cycle.NewArticles,
		"duration":     cycle.Duration.String(),
	}, nil, nil
}

func (h *handlers) feedCleanup(ctx context.Context, _ map[string]string) (map[string]interface{}, *domain.Notification, error) {
	deactivated, err := h.feeds.DeactivateOrphans(ctx)
	if err != nil {
		return nil, nil, err
	}
	return map[string]interface{}{"deactivated": deactivated}, nil, nil
}

func (h *handlers) autoMarkRead(ctx context.Context, _ map[string]string) (map[string]interface{}, *domain.Notification, error) {
	marked, err := h.feeds.AutoMarkReadSweep(ctx)
	if err != nil {
		return nil, nil, err
	}
	return map[string]interface{}{"marked_read": marked}, nil, nil
}

func payloadUUID(payload map[string]string, key string) (uuid.UUID, error) {
	raw, ok := payload[key]
	if !ok {
		return uuid.Nil, fmt.Errorf("payload missing %s", key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("payload %s: %w", key, err)
	}
	return id, nil
}

func failureNote(title string, action domain.JobType, message string) *domain.Notification {
	return &domain.Notification{Title: title, Action: string(action), Message: message}
}
