package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

type stubNotificationRepo struct {
	notifications map[string]*domain.Notification
	nextID        int
	createErr     error
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{notifications: make(map[string]*domain.Notification)}
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	copy := *n
	copy.ID = fmt.Sprintf("ntf-%d", r.nextID)
	r.notifications[copy.ID] = &copy
	result := copy
	return &result, nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id string) (*domain.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	copy := *n
	return &copy, nil
}

func (r *stubNotificationRepo) ListByAccount(_ context.Context, accountID string, unreadOnly bool, limit int) ([]*domain.Notification, error) {
	out := make([]*domain.Notification, 0)
	for _, n := range r.notifications {
		if n.AccountID != accountID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		copy := *n
		out = append(out, &copy)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id, accountID string) error {
	n, ok := r.notifications[id]
	if !ok || n.AccountID != accountID {
		return domain.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

func (r *stubNotificationRepo) MarkSent(_ context.Context, id string, at time.Time) error {
	n, ok := r.notifications[id]
	if !ok {
		return domain.ErrNotificationNotFound
	}
	n.SentAt = &at
	return nil
}

func (r *stubNotificationRepo) CountUnread(_ context.Context, accountID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.AccountID == accountID && !n.Read {
			count++
		}
	}
	return count, nil
}

type publishedMessage struct {
	channel string
	data    []byte
	attrs   map[string]string
}

type stubPublisher struct {
	published  []publishedMessage
	publishErr error
}

func (p *stubPublisher) Publish(_ context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if p.publishErr != nil {
		return "", p.publishErr
	}
	p.published = append(p.published, publishedMessage{channel: channel, data: data, attrs: attrs})
	return fmt.Sprintf("msg-%d", len(p.published)), nil
}

func TestNotificationService_Notify_StoresAndPublishes(t *testing.T) {
	repo := newStubNotificationRepo()
	publisher := &stubPublisher{}
	svc := NewNotificationService(repo, publisher, zerolog.Nop())

	notification, err := svc.Notify(context.Background(), ports.NotifyInput{
		AccountID:    "acc-1",
		ObligationID: "obl-1",
		Kind:         domain.NotificationObligationDue,
		Title:        "DAS vence em 3 dias",
		Message:      "Obrigação DAS 06/2026 vence em 30/06/2026",
	})
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if notification.ID == "" {
		t.Fatalf("notification not persisted")
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected one published message, got %d", len(publisher.published))
	}

	msg := publisher.published[0]
	if msg.channel != NotificationChannel {
		t.Fatalf("wrong channel: %s", msg.channel)
	}
	var event notificationEvent
	if err := json.Unmarshal(msg.data, &event); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if event.ID != notification.ID || event.AccountID != "acc-1" {
		t.Fatalf("payload mismatch: %+v", event)
	}
	if msg.attrs["kind"] != string(domain.NotificationObligationDue) {
		t.Fatalf("missing kind attribute: %v", msg.attrs)
	}
}

func TestNotificationService_Notify_BrokerDownStillStores(t *testing.T) {
	repo := newStubNotificationRepo()
	publisher := &stubPublisher{publishErr: errors.New("connection refused")}
	svc := NewNotificationService(repo, publisher, zerolog.Nop())

	notification, err := svc.Notify(context.Background(), ports.NotifyInput{
		AccountID: "acc-1",
		Kind:      domain.NotificationSystem,
		Title:     "manutenção programada",
	})
	if err != nil {
		t.Fatalf("notify must not fail when the broker is down: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), notification.ID); err != nil {
		t.Fatalf("notification not stored: %v", err)
	}
}

func TestNotificationService_MarkRead_WrongAccount(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := NewNotificationService(repo, &stubPublisher{}, zerolog.Nop())

	notification, err := svc.Notify(context.Background(), ports.NotifyInput{
		AccountID: "acc-1",
		Kind:      domain.NotificationSystem,
		Title:     "aviso",
	})
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	if err := svc.MarkRead(context.Background(), notification.ID, "acc-2"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound for foreign account, got %v", err)
	}
	if err := svc.MarkRead(context.Background(), notification.ID, "acc-1"); err != nil {
		t.Fatalf("owner mark read failed: %v", err)
	}

	unread, err := svc.CountUnread(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("count unread failed: %v", err)
	}
	if unread != 0 {
		t.Fatalf("expected 0 unread, got %d", unread)
	}
}
