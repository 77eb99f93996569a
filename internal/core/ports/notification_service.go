package ports

import (
	"context"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// NotifyInput creates a notification for an account and publishes it to the
// broker for delivery.
type NotifyInput struct {
	AccountID    string
	ClientID     string
	ObligationID string
	Kind         domain.NotificationKind
	Title        string
	Message      string
}

// NotificationService records and delivers per-account notifications.
type NotificationService interface {
	Notify(ctx context.Context, input NotifyInput) (*domain.Notification, error)
	ListOwn(ctx context.Context, accountID string, unreadOnly bool, limit int) ([]*domain.Notification, error)
	// MarkRead flags a notification read; accountID guards against marking
	// someone else's notification.
	MarkRead(ctx context.Context, id, accountID string) error
	CountUnread(ctx context.Context, accountID string) (int64, error)
}
