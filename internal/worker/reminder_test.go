package worker

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

type fakeObligationRepo struct {
	ports.ObligationRepository

	due      []*domain.Obligation
	reminded map[string]time.Time
	overdue  int64
}

func (f *fakeObligationRepo) FindDueWithin(_ context.Context, _ time.Time, _ time.Duration) ([]*domain.Obligation, error) {
	return f.due, nil
}

func (f *fakeObligationRepo) MarkReminded(_ context.Context, id string, at time.Time) error {
	f.reminded[id] = at
	return nil
}

func (f *fakeObligationRepo) CountOverdue(_ context.Context, _ time.Time) (int64, error) {
	return f.overdue, nil
}

type fakeNotificationService struct {
	notified []ports.NotifyInput
}

func (f *fakeNotificationService) Notify(_ context.Context, input ports.NotifyInput) (*domain.Notification, error) {
	f.notified = append(f.notified, input)
	return &domain.Notification{ID: "ntf-1", AccountID: input.AccountID}, nil
}

func (f *fakeNotificationService) ListOwn(_ context.Context, _ string, _ bool, _ int) ([]*domain.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationService) MarkRead(_ context.Context, _, _ string) error { return nil }

func (f *fakeNotificationService) CountUnread(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func TestReminder_Sweep(t *testing.T) {
	now := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	repo := &fakeObligationRepo{
		reminded: make(map[string]time.Time),
		due: []*domain.Obligation{
			{ID: "obl-1", ClientID: "cli-1", Title: "DAS 06/2026", Competence: "2026-06",
				DueDate: now.Add(48 * time.Hour), AssignedTo: "acc-1", Status: domain.ObligationPending},
			{ID: "obl-2", ClientID: "cli-1", Title: "FGTS 06/2026", Competence: "2026-06",
				DueDate: now.Add(72 * time.Hour), Status: domain.ObligationPending}, // unassigned
		},
	}
	notifications := &fakeNotificationService{}

	r := NewReminder(repo, notifications, time.Hour, 7*24*time.Hour, zerolog.Nop())
	r.now = func() time.Time { return now }

	r.sweep(context.Background())

	if len(notifications.notified) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifications.notified))
	}
	input := notifications.notified[0]
	if input.AccountID != "acc-1" || input.ObligationID != "obl-1" {
		t.Fatalf("unexpected notification target: %+v", input)
	}
	if input.Kind != domain.NotificationObligationDue {
		t.Fatalf("unexpected kind: %s", input.Kind)
	}

	if _, ok := repo.reminded["obl-1"]; !ok {
		t.Fatalf("assigned obligation must be marked reminded")
	}
	if _, ok := repo.reminded["obl-2"]; ok {
		t.Fatalf("unassigned obligation must stay unreminded for the next sweep")
	}
}
