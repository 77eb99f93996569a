package ports

import (
	"context"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// AccountFilter carries the optional filters for listing accounts.
type AccountFilter struct {
	Role   domain.Role // empty = all roles
	Active *bool       // nil = both active and inactive
}

// AccountRepository defines persistence operations for accounts. Lookups are
// the only blocking points of the auth core; implementations apply a per-call
// timeout and callers surface failures instead of retrying transparently.
type AccountRepository interface {
	// FindByEmail looks an account up by case-normalized email.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AccountFilter) ([]*domain.Account, error)
}
