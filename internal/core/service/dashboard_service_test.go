package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

func TestDashboardService_Summary(t *testing.T) {
	clients := newStubClientRepo()
	obligations := newStubObligationRepo()
	documents := newStubDocumentRepo()
	notifications := newStubNotificationRepo()

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	client := seedClient(t, clients)
	if _, err := clients.Create(context.Background(), &domain.Client{
		Name: "Inativa ME", CNPJ: "98765432000101", Regime: domain.RegimeSimples, Active: false,
	}); err != nil {
		t.Fatalf("seed inactive client: %v", err)
	}

	seed := func(status domain.ObligationStatus, due time.Time) {
		t.Helper()
		if _, err := obligations.Create(context.Background(), &domain.Obligation{
			ClientID: client.ID, Title: "DAS", Kind: "DAS", DueDate: due, Status: status,
		}); err != nil {
			t.Fatalf("seed obligation: %v", err)
		}
	}
	seed(domain.ObligationPending, now.Add(48*time.Hour))    // due soon
	seed(domain.ObligationPending, now.Add(-24*time.Hour))   // overdue
	seed(domain.ObligationInProgress, now.Add(30*24*time.Hour))
	seed(domain.ObligationDone, now.Add(-72*time.Hour)) // done, never overdue

	if _, err := documents.Create(context.Background(), &domain.Document{ClientID: client.ID, Name: "contrato.pdf"}); err != nil {
		t.Fatalf("seed document: %v", err)
	}

	if _, err := notifications.Create(context.Background(), &domain.Notification{AccountID: "acc-1", Kind: domain.NotificationSystem}); err != nil {
		t.Fatalf("seed notification: %v", err)
	}
	if _, err := notifications.Create(context.Background(), &domain.Notification{AccountID: "acc-2", Kind: domain.NotificationSystem}); err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	svc := NewDashboardService(clients, obligations, documents, notifications, zerolog.Nop())
	svc.now = func() time.Time { return now }

	summary, err := svc.Summary(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if summary.ActiveClients != 1 {
		t.Fatalf("expected 1 active client, got %d", summary.ActiveClients)
	}
	if summary.ObligationsByStatus["pendente"] != 2 {
		t.Fatalf("expected 2 pendente, got %d", summary.ObligationsByStatus["pendente"])
	}
	if summary.ObligationsByStatus["cancelada"] != 0 {
		t.Fatalf("statuses with no obligations must still appear, got %v", summary.ObligationsByStatus)
	}
	if summary.ObligationsOverdue != 1 {
		t.Fatalf("expected 1 overdue, got %d", summary.ObligationsOverdue)
	}
	if summary.ObligationsDueSoon != 1 {
		t.Fatalf("expected 1 due soon, got %d", summary.ObligationsDueSoon)
	}
	if summary.Documents != 1 {
		t.Fatalf("expected 1 document, got %d", summary.Documents)
	}
	if summary.UnreadNotifications != 1 {
		t.Fatalf("unread count must be scoped to the account, got %d", summary.UnreadNotifications)
	}
}
