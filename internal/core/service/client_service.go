package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ClientService implements the company registry use cases.
type ClientService struct {
	repo ports.ClientRepository
	log  zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, log: log}
}

func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	// CNPJ is the natural key; refuse duplicates before inserting.
	if _, err := s.repo.FindByCNPJ(ctx, input.CNPJ); err == nil {
		return nil, domain.ErrClientExists
	} else if !errors.Is(err, domain.ErrClientNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	client, err := s.repo.Create(ctx, &domain.Client{
		Name:      input.Name,
		TradeName: input.TradeName,
		CNPJ:      input.CNPJ,
		Email:     input.Email,
		Phone:     input.Phone,
		Regime:    domain.TaxRegime(input.Regime),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("client_id", client.ID).Str("cnpj", client.CNPJ).Msg("client registered")
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) Update(ctx context.Context, id string, input ports.UpdateClientInput) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.TradeName != nil {
		client.TradeName = *input.TradeName
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Regime != nil {
		client.Regime = domain.TaxRegime(*input.Regime)
	}
	if input.Active != nil {
		client.Active = *input.Active
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("client_id", id).Msg("client removed")
	return nil
}

func (s *ClientService) List(ctx context.Context, filter ports.ListClientsFilter) (*ports.ListClientsResult, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListClientsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
