package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

type stubObligationRepo struct {
	obligations map[string]*domain.Obligation
	nextID      int
}

func newStubObligationRepo() *stubObligationRepo {
	return &stubObligationRepo{obligations: make(map[string]*domain.Obligation)}
}

func cloneObligation(o *domain.Obligation) *domain.Obligation {
	if o == nil {
		return nil
	}
	clone := *o
	clone.StatusHistory = append([]domain.ObligationHistoryEntry(nil), o.StatusHistory...)
	return &clone
}

func (r *stubObligationRepo) Create(_ context.Context, o *domain.Obligation) (*domain.Obligation, error) {
	r.nextID++
	copy := cloneObligation(o)
	copy.ID = fmt.Sprintf("obl-%d", r.nextID)
	r.obligations[copy.ID] = copy
	return cloneObligation(copy), nil
}

func (r *stubObligationRepo) FindByID(_ context.Context, id string) (*domain.Obligation, error) {
	o, ok := r.obligations[id]
	if !ok {
		return nil, domain.ErrObligationNotFound
	}
	return cloneObligation(o), nil
}

func (r *stubObligationRepo) Update(_ context.Context, o *domain.Obligation) error {
	if _, ok := r.obligations[o.ID]; !ok {
		return domain.ErrObligationNotFound
	}
	r.obligations[o.ID] = cloneObligation(o)
	return nil
}

func (r *stubObligationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.obligations[id]; !ok {
		return domain.ErrObligationNotFound
	}
	delete(r.obligations, id)
	return nil
}

func (r *stubObligationRepo) List(_ context.Context, _ ports.ListObligationsFilter) ([]*domain.Obligation, int64, error) {
	out := make([]*domain.Obligation, 0, len(r.obligations))
	for _, o := range r.obligations {
		out = append(out, cloneObligation(o))
	}
	return out, int64(len(out)), nil
}

func (r *stubObligationRepo) UpdateStatus(_ context.Context, id string, status domain.ObligationStatus, entry domain.ObligationHistoryEntry) error {
	o, ok := r.obligations[id]
	if !ok {
		return domain.ErrObligationNotFound
	}
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, entry)
	return nil
}

func (r *stubObligationRepo) FindDueWithin(_ context.Context, now time.Time, window time.Duration) ([]*domain.Obligation, error) {
	var due []*domain.Obligation
	for _, o := range r.obligations {
		open := o.Status == domain.ObligationPending || o.Status == domain.ObligationInProgress
		if open && o.RemindedAt == nil && o.DueDate.After(now) && o.DueDate.Before(now.Add(window)) {
			due = append(due, cloneObligation(o))
		}
	}
	return due, nil
}

func (r *stubObligationRepo) MarkReminded(_ context.Context, id string, at time.Time) error {
	o, ok := r.obligations[id]
	if !ok {
		return domain.ErrObligationNotFound
	}
	o.RemindedAt = &at
	return nil
}

func (r *stubObligationRepo) CountByStatus(_ context.Context) (map[domain.ObligationStatus]int64, error) {
	counts := make(map[domain.ObligationStatus]int64)
	for _, o := range r.obligations {
		counts[o.Status]++
	}
	return counts, nil
}

func (r *stubObligationRepo) CountOverdue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, o := range r.obligations {
		if o.Overdue(now) {
			n++
		}
	}
	return n, nil
}

func (r *stubObligationRepo) CountDueWithin(_ context.Context, now time.Time, window time.Duration) (int64, error) {
	due, _ := r.FindDueWithin(context.Background(), now, window)
	return int64(len(due)), nil
}

type stubClientRepo struct {
	clients map[string]*domain.Client
	nextID  int
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	r.nextID++
	copy := *c
	copy.ID = fmt.Sprintf("cli-%d", r.nextID)
	r.clients[copy.ID] = &copy
	result := copy
	return &result, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	copy := *c
	return &copy, nil
}

func (r *stubClientRepo) FindByCNPJ(_ context.Context, cnpj string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.CNPJ == cnpj {
			copy := *c
			return &copy, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) Update(_ context.Context, c *domain.Client) error {
	if _, ok := r.clients[c.ID]; !ok {
		return domain.ErrClientNotFound
	}
	copy := *c
	r.clients[c.ID] = &copy
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *stubClientRepo) List(_ context.Context, _ ports.ListClientsFilter) ([]*domain.Client, int64, error) {
	out := make([]*domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		copy := *c
		out = append(out, &copy)
	}
	return out, int64(len(out)), nil
}

func (r *stubClientRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, c := range r.clients {
		if c.Active {
			n++
		}
	}
	return n, nil
}

func seedClient(t *testing.T, repo *stubClientRepo) *domain.Client {
	t.Helper()
	client, err := repo.Create(context.Background(), &domain.Client{
		Name:   "Padaria Pão Quente LTDA",
		CNPJ:   "12345678000190",
		Regime: domain.RegimeSimples,
		Active: true,
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func TestObligationService_Create(t *testing.T) {
	obligations := newStubObligationRepo()
	clients := newStubClientRepo()
	client := seedClient(t, clients)
	svc := NewObligationService(obligations, clients, zerolog.Nop())

	due := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	obligation, err := svc.Create(context.Background(), ports.CreateObligationInput{
		ClientID:   client.ID,
		Title:      "DAS competência 03/2026",
		Kind:       "DAS",
		Competence: "2026-03",
		DueDate:    due,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if obligation.Status != domain.ObligationPending {
		t.Fatalf("new obligations start pending, got %s", obligation.Status)
	}
	if len(obligation.StatusHistory) != 1 {
		t.Fatalf("expected initial history entry, got %d", len(obligation.StatusHistory))
	}
}

func TestObligationService_Create_UnknownClient(t *testing.T) {
	svc := NewObligationService(newStubObligationRepo(), newStubClientRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateObligationInput{
		ClientID: "cli-missing",
		Title:    "DCTF",
		Kind:     "DCTF",
		DueDate:  time.Now(),
	})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestObligationService_Transition_Valid(t *testing.T) {
	obligations := newStubObligationRepo()
	clients := newStubClientRepo()
	client := seedClient(t, clients)
	svc := NewObligationService(obligations, clients, zerolog.Nop())

	obligation, err := svc.Create(context.Background(), ports.CreateObligationInput{
		ClientID: client.ID, Title: "FGTS", Kind: "FGTS", DueDate: time.Now().Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Transition(context.Background(), obligation.ID, ports.TransitionInput{
		Status: string(domain.ObligationInProgress), ChangedBy: "acc-1",
	})
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if updated.Status != domain.ObligationInProgress {
		t.Fatalf("expected em_andamento, got %s", updated.Status)
	}
	if len(updated.StatusHistory) != 2 {
		t.Fatalf("expected history appended, got %d entries", len(updated.StatusHistory))
	}

	if _, err := svc.Transition(context.Background(), obligation.ID, ports.TransitionInput{
		Status: string(domain.ObligationDone), ChangedBy: "acc-1",
	}); err != nil {
		t.Fatalf("em_andamento -> concluida should be valid: %v", err)
	}
}

func TestObligationService_Transition_Invalid(t *testing.T) {
	obligations := newStubObligationRepo()
	clients := newStubClientRepo()
	client := seedClient(t, clients)
	svc := NewObligationService(obligations, clients, zerolog.Nop())

	obligation, err := svc.Create(context.Background(), ports.CreateObligationInput{
		ClientID: client.ID, Title: "DAS", Kind: "DAS", DueDate: time.Now().Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Transition(context.Background(), obligation.ID, ports.TransitionInput{
		Status: string(domain.ObligationDone),
	}); err != nil {
		t.Fatalf("pendente -> concluida should be valid: %v", err)
	}

	// Done is terminal.
	_, err = svc.Transition(context.Background(), obligation.ID, ports.TransitionInput{
		Status: string(domain.ObligationInProgress),
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
