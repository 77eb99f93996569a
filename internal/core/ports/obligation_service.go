package ports

import (
	"context"
	"time"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// CreateObligationInput carries all data needed to register an obligation.
type CreateObligationInput struct {
	ClientID   string
	Title      string
	Kind       string
	Competence string
	DueDate    time.Time
	AssignedTo string
	Notes      string
}

// UpdateObligationInput carries a partial update; nil fields are untouched.
// Status is deliberately absent; status moves only through Transition.
type UpdateObligationInput struct {
	Title      *string
	Kind       *string
	Competence *string
	DueDate    *time.Time
	AssignedTo *string
	Notes      *string
}

// TransitionInput moves an obligation through its status state machine.
type TransitionInput struct {
	Status    string
	ChangedBy string
	Notes     string
}

// ListObligationsResult is returned by List.
type ListObligationsResult struct {
	Items      []*domain.Obligation
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ObligationService defines use-case operations for fiscal obligations.
type ObligationService interface {
	Create(ctx context.Context, input CreateObligationInput) (*domain.Obligation, error)
	Get(ctx context.Context, id string) (*domain.Obligation, error)
	Update(ctx context.Context, id string, input UpdateObligationInput) (*domain.Obligation, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListObligationsFilter) (*ListObligationsResult, error)
	// Transition validates the state machine move and appends history.
	Transition(ctx context.Context, id string, input TransitionInput) (*domain.Obligation, error)
}
