package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

// NotificationChannel is the broker channel notifications are published to.
const NotificationChannel = "notifications"

// NotificationService records per-account notifications and hands them to
// the broker for delivery. Publishing is best-effort: the notification is
// persisted first and remains listable even if the broker is down.
type NotificationService struct {
	repo      ports.NotificationRepository
	publisher ports.EventPublisher
	log       zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, publisher ports.EventPublisher, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, publisher: publisher, log: log}
}

// notificationEvent is the wire payload published to the broker.
type notificationEvent struct {
	ID           string `json:"id"`
	AccountID    string `json:"account_id"`
	ObligationID string `json:"obligation_id,omitempty"`
	Kind         string `json:"kind"`
	Title        string `json:"title"`
	Message      string `json:"message"`
}

func (s *NotificationService) Notify(ctx context.Context, input ports.NotifyInput) (*domain.Notification, error) {
	notification, err := s.repo.Create(ctx, &domain.Notification{
		AccountID:    input.AccountID,
		ClientID:     input.ClientID,
		ObligationID: input.ObligationID,
		Kind:         input.Kind,
		Title:        input.Title,
		Message:      input.Message,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(notificationEvent{
		ID:           notification.ID,
		AccountID:    notification.AccountID,
		ObligationID: notification.ObligationID,
		Kind:         string(notification.Kind),
		Title:        notification.Title,
		Message:      notification.Message,
	})
	if err != nil {
		return nil, err
	}

	attrs := map[string]string{"kind": string(notification.Kind)}
	if _, err := s.publisher.Publish(ctx, NotificationChannel, payload, attrs); err != nil {
		s.log.Warn().Err(err).Str("notification_id", notification.ID).Msg("broker publish failed, notification stored only")
	}

	return notification, nil
}

func (s *NotificationService) ListOwn(ctx context.Context, accountID string, unreadOnly bool, limit int) ([]*domain.Notification, error) {
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	return s.repo.ListByAccount(ctx, accountID, unreadOnly, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, accountID string) error {
	return s.repo.MarkRead(ctx, id, accountID)
}

func (s *NotificationService) CountUnread(ctx context.Context, accountID string) (int64, error) {
	return s.repo.CountUnread(ctx, accountID)
}
