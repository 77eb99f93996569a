package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

// dueSoonWindow matches the reminder sweep: obligations due within a week
// count toward the "due soon" dashboard tile.
const dueSoonWindow = 7 * 24 * time.Hour

// DashboardService aggregates counters across the repositories for the
// landing page. Counts are computed per request; there is no cache.
type DashboardService struct {
	clients       ports.ClientRepository
	obligations   ports.ObligationRepository
	documents     ports.DocumentRepository
	notifications ports.NotificationRepository
	log           zerolog.Logger
	now           func() time.Time
}

func NewDashboardService(
	clients ports.ClientRepository,
	obligations ports.ObligationRepository,
	documents ports.DocumentRepository,
	notifications ports.NotificationRepository,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		clients:       clients,
		obligations:   obligations,
		documents:     documents,
		notifications: notifications,
		log:           log,
		now:           time.Now,
	}
}

func (s *DashboardService) Summary(ctx context.Context, accountID string) (*ports.DashboardSummary, error) {
	now := s.now().UTC()

	activeClients, err := s.clients.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.obligations.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	statuses := make(map[string]int64, len(byStatus))
	for _, status := range domain.AllObligationStatuses {
		statuses[string(status)] = byStatus[status]
	}

	overdue, err := s.obligations.CountOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	dueSoon, err := s.obligations.CountDueWithin(ctx, now, dueSoonWindow)
	if err != nil {
		return nil, err
	}

	documents, err := s.documents.Count(ctx)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifications.CountUnread(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &ports.DashboardSummary{
		ActiveClients:       activeClients,
		ObligationsByStatus: statuses,
		ObligationsOverdue:  overdue,
		ObligationsDueSoon:  dueSoon,
		Documents:           documents,
		UnreadNotifications: unread,
	}, nil
}
