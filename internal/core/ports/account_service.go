package ports

import (
	"context"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// CreateAccountInput carries the data for creating a new account.
// The plaintext password exists only for the duration of the call.
type CreateAccountInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
}

// UpdateAccountInput carries a partial account update. Nil fields are left
// untouched. Role changes and deactivation take effect on the target's next
// validated request, so no token revocation is needed.
type UpdateAccountInput struct {
	Name     *string
	Role     *domain.Role
	Active   *bool
	Password *string
}

// AccountService is the ADMIN-only user administration surface.
type AccountService interface {
	Create(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, filter AccountFilter) ([]*domain.Account, error)
	// Update applies the partial update. actorID is the calling admin;
	// an admin cannot deactivate their own account.
	Update(ctx context.Context, actorID, id string, input UpdateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, actorID, id string) error
}
