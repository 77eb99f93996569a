package ports

import (
	"context"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// CreateClientInput carries all data needed to register a client company.
type CreateClientInput struct {
	Name      string
	TradeName string
	CNPJ      string
	Email     string
	Phone     string
	Regime    string
}

// UpdateClientInput carries a partial client update; nil fields are untouched.
type UpdateClientInput struct {
	Name      *string
	TradeName *string
	Email     *string
	Phone     *string
	Regime    *string
	Active    *bool
}

// ListClientsResult is returned by List.
type ListClientsResult struct {
	Items      []*domain.Client
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ClientService defines use-case operations for the client registry.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, id string, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListClientsFilter) (*ListClientsResult, error)
}
