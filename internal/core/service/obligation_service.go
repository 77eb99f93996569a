package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

// ObligationService implements fiscal-obligation tracking. Status moves only
// through Transition, which enforces the state machine and appends history.
type ObligationService struct {
	repo       ports.ObligationRepository
	clientRepo ports.ClientRepository
	log        zerolog.Logger
}

func NewObligationService(repo ports.ObligationRepository, clientRepo ports.ClientRepository, log zerolog.Logger) *ObligationService {
	return &ObligationService{repo: repo, clientRepo: clientRepo, log: log}
}

func (s *ObligationService) Create(ctx context.Context, input ports.CreateObligationInput) (*domain.Obligation, error) {
	// The obligation must point at a registered client.
	if _, err := s.clientRepo.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	obligation, err := s.repo.Create(ctx, &domain.Obligation{
		ClientID:   input.ClientID,
		Title:      input.Title,
		Kind:       input.Kind,
		Competence: input.Competence,
		DueDate:    input.DueDate.UTC(),
		Status:     domain.ObligationPending,
		AssignedTo: input.AssignedTo,
		Notes:      input.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
		StatusHistory: []domain.ObligationHistoryEntry{
			{Status: domain.ObligationPending, Timestamp: now},
		},
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("obligation_id", obligation.ID).
		Str("client_id", obligation.ClientID).
		Str("kind", obligation.Kind).
		Time("due_date", obligation.DueDate).
		Msg("obligation created")

	return obligation, nil
}

func (s *ObligationService) Get(ctx context.Context, id string) (*domain.Obligation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ObligationService) Update(ctx context.Context, id string, input ports.UpdateObligationInput) (*domain.Obligation, error) {
	obligation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		obligation.Title = *input.Title
	}
	if input.Kind != nil {
		obligation.Kind = *input.Kind
	}
	if input.Competence != nil {
		obligation.Competence = *input.Competence
	}
	if input.DueDate != nil {
		obligation.DueDate = input.DueDate.UTC()
	}
	if input.AssignedTo != nil {
		obligation.AssignedTo = *input.AssignedTo
	}
	if input.Notes != nil {
		obligation.Notes = *input.Notes
	}
	obligation.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, obligation); err != nil {
		return nil, err
	}
	return obligation, nil
}

func (s *ObligationService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ObligationService) List(ctx context.Context, filter ports.ListObligationsFilter) (*ports.ListObligationsResult, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListObligationsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Transition validates the state machine move and atomically applies the new
// status plus a history entry.
func (s *ObligationService) Transition(ctx context.Context, id string, input ports.TransitionInput) (*domain.Obligation, error) {
	obligation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := domain.ObligationStatus(input.Status)
	if !obligation.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, obligation.Status, next)
	}

	entry := domain.ObligationHistoryEntry{
		Status:    next,
		Timestamp: time.Now().UTC(),
		ChangedBy: input.ChangedBy,
		Notes:     input.Notes,
	}
	if err := s.repo.UpdateStatus(ctx, id, next, entry); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("obligation_id", id).
		Str("from", string(obligation.Status)).
		Str("to", string(next)).
		Str("changed_by", input.ChangedBy).
		Msg("obligation status changed")

	obligation.Status = next
	obligation.StatusHistory = append(obligation.StatusHistory, entry)
	obligation.UpdatedAt = entry.Timestamp
	return obligation, nil
}
