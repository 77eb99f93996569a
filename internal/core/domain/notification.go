package domain

import (
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationKind classifies what triggered a notification.
type NotificationKind string

const (
	NotificationObligationDue     NotificationKind = "obligation_due"
	NotificationObligationOverdue NotificationKind = "obligation_overdue"
	NotificationSystem            NotificationKind = "system"
)

// Notification is a per-account message. Reminder notifications are created
// by the background sweep and published to the broker; SentAt is stamped by
// the consumer once the message round-trips.
type Notification struct {
	ID           string           `json:"id" bson:"_id,omitempty"`
	AccountID    string           `json:"account_id" bson:"account_id"`
	ClientID     string           `json:"client_id,omitempty" bson:"client_id,omitempty"`
	ObligationID string           `json:"obligation_id,omitempty" bson:"obligation_id,omitempty"`
	Kind         NotificationKind `json:"kind" bson:"kind"`
	Title        string           `json:"title" bson:"title"`
	Message      string           `json:"message" bson:"message"`
	Read         bool             `json:"read" bson:"read"`
	SentAt       *time.Time       `json:"sent_at,omitempty" bson:"sent_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at" bson:"created_at"`
}
