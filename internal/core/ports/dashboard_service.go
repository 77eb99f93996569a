package ports

import "context"

// DashboardSummary aggregates the landing-page counters.
type DashboardSummary struct {
	ActiveClients       int64            `json:"active_clients"`
	ObligationsByStatus map[string]int64 `json:"obligations_by_status"`
	ObligationsOverdue  int64            `json:"obligations_overdue"`
	ObligationsDueSoon  int64            `json:"obligations_due_soon"`
	Documents           int64            `json:"documents"`
	UnreadNotifications int64            `json:"unread_notifications"`
}

// DashboardService computes the dashboard counters for the calling account.
type DashboardService interface {
	Summary(ctx context.Context, accountID string) (*DashboardSummary, error)
}
