package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

// AccountService implements user administration. Routes in front of it are
// gated to ADMIN; the service itself enforces the self-lockout rules.
type AccountService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, log: log}
}

func (s *AccountService) Create(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error) {
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account, err := s.repo.Create(ctx, &domain.Account{
		Email:        normalizeEmail(input.Email),
		Name:         input.Name,
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("account created")
	account.PasswordHash = ""
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = ""
	return account, nil
}

func (s *AccountService) List(ctx context.Context, filter ports.AccountFilter) ([]*domain.Account, error) {
	accounts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		a.PasswordHash = ""
	}
	return accounts, nil
}

// Update applies a partial account update. Deactivating or demoting takes
// effect on the target's next validated request, since the validator re-fetches
// the live record, so no token revocation is required.
func (s *AccountService) Update(ctx context.Context, actorID, id string, input ports.UpdateAccountInput) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		account.Role = *input.Role
	}
	if input.Active != nil {
		// An admin locking themselves out would leave the office without
		// an administrator; reject it.
		if actorID == id && !*input.Active {
			return nil, domain.ErrForbidden
		}
		account.Active = *input.Active
	}
	if input.Password != nil {
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", id).Str("actor_id", actorID).Msg("account updated")
	account.PasswordHash = ""
	return account, nil
}

func (s *AccountService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("account_id", id).Str("actor_id", actorID).Msg("account deleted")
	return nil
}
