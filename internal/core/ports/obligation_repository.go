package ports

import (
	"context"
	"time"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// ListObligationsFilter carries the query parameters for listing obligations.
type ListObligationsFilter struct {
	ClientID   string // optional
	Status     string // optional
	Kind       string // optional
	AssignedTo string // optional
	DueFrom    time.Time
	DueTo      time.Time
	Page       int
	Limit      int
}

// ObligationRepository defines persistence operations for fiscal obligations.
type ObligationRepository interface {
	Create(ctx context.Context, o *domain.Obligation) (*domain.Obligation, error)
	FindByID(ctx context.Context, id string) (*domain.Obligation, error)
	Update(ctx context.Context, o *domain.Obligation) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListObligationsFilter) ([]*domain.Obligation, int64, error)

	// UpdateStatus atomically sets the new status and appends a history entry.
	UpdateStatus(ctx context.Context, id string, status domain.ObligationStatus, entry domain.ObligationHistoryEntry) error

	// FindDueWithin returns open obligations (pendente or em_andamento) due
	// between now and now+window that have not been reminded yet.
	FindDueWithin(ctx context.Context, now time.Time, window time.Duration) ([]*domain.Obligation, error)
	// MarkReminded stamps RemindedAt so the sweep does not fire twice.
	MarkReminded(ctx context.Context, id string, at time.Time) error

	CountByStatus(ctx context.Context) (map[domain.ObligationStatus]int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
	CountDueWithin(ctx context.Context, now time.Time, window time.Duration) (int64, error)
}
