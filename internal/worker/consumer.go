package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
	"github.com/gestaocontabil/backend/internal/core/service"
	"github.com/gestaocontabil/backend/internal/infrastructure/queue"
)

// Consumer drains the notification queue and stamps SentAt on each delivered
// notification. In a fuller deployment this is where e-mail or push delivery
// would hook in; today delivery is the broker round-trip itself.
type Consumer struct {
	broker        queue.Broker
	notifications ports.NotificationRepository
	log           zerolog.Logger
}

func NewConsumer(broker queue.Broker, notifications ports.NotificationRepository, log zerolog.Logger) *Consumer {
	return &Consumer{broker: broker, notifications: notifications, log: log}
}

// Start consumes the notification channel until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	err := c.broker.Subscribe(ctx, service.NotificationChannel, c.handle)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *Consumer) handle(ctx context.Context, msg queue.Message) error {
	var event struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(msg.Data, &event); err != nil || event.ID == "" {
		// Unparseable payloads would requeue forever; drop them.
		c.log.Warn().Str("message_id", msg.ID).Msg("dropping malformed notification payload")
		return nil
	}

	if err := c.notifications.MarkSent(ctx, event.ID, time.Now().UTC()); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			c.log.Warn().Str("notification_id", event.ID).Msg("notification vanished before delivery")
			return nil
		}
		return err
	}

	c.log.Debug().Str("notification_id", event.ID).Msg("notification delivered")
	return nil
}
