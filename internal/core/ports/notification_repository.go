package ports

import (
	"context"
	"time"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	// ListByAccount returns the account's notifications, newest first.
	ListByAccount(ctx context.Context, accountID string, unreadOnly bool, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, accountID string) error
	MarkSent(ctx context.Context, id string, at time.Time) error
	CountUnread(ctx context.Context, accountID string) (int64, error)
}
