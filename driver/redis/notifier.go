package redis

import (
	"context"
	"fmt"
	"log/slog"

	"lector/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Notifier implements port.Notifier on Redis pub/sub. Frames travel in the
// pipe-delimited wire form `title|action|message`.
type Notifier struct {
	client *redis.Client
	logger *slog.Logger
}

func NewNotifier(client *redis.Client, logger *slog.Logger) *Notifier {
	return &Notifier{
		client: client,
		logger: logger.With("component", "notifier"),
	}
}

func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, notification domain.Notification) error {
	channel := domain.NotificationChannel(userID.String())

	if err := n.client.Publish(ctx, channel, notification.Encode()).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

// Subscribe streams the user's notifications until ctx is cancelled. The
// returned channel closes when the subscription ends.
func (n *Notifier) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan domain.Notification, error) {
	channel := domain.NotificationChannel(userID.String())
	pubsub := n.client.Subscribe(ctx, channel)

	// Confirm the subscription before handing the channel out
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan domain.Notification)

	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case message, ok := <-messages:
				if !ok {
					return
				}
				notification, err := domain.DecodeNotification(message.Payload)
				if err != nil {
					n.logger.ErrorContext(ctx, "dropping malformed notification",
						"channel", channel, "error", err)
					continue
				}
				select {
				case out <- notification:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
