package ports

import (
	"context"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// ListClientsFilter carries the query parameters for listing clients.
type ListClientsFilter struct {
	Search string // optional: partial match on name, trade name, or CNPJ
	Regime string // optional: filter by tax regime
	Active *bool  // nil = both
	Page   int    // 1-based
	Limit  int    // capped at 100 by the service
}

// ClientRepository defines persistence operations for client companies.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	FindByCNPJ(ctx context.Context, cnpj string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
	// List returns a page of clients matching filter and the total count.
	List(ctx context.Context, filter ListClientsFilter) ([]*domain.Client, int64, error)
	CountActive(ctx context.Context) (int64, error)
}
