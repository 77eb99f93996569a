package ports

import (
	"context"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// SessionStore persists the {token, profile} pair issued at login so the
// server-rendered frontend can restore state across requests. It is an
// injected dependency, never a hidden singleton, so it can be faked in tests.
//
// The stored profile is advisory, for rendering role-gated affordances
// without a round trip. It never gates a server-side operation.
type SessionStore interface {
	// Save persists the session under id, expiring with the token.
	Save(ctx context.Context, id string, session *domain.Session) error

	// Load restores a session; domain.ErrSessionNotFound when absent or expired.
	Load(ctx context.Context, id string) (*domain.Session, error)

	// Clear removes the session. Called on logout and whenever a stored
	// token is rejected with a token-level or account-disabled error.
	Clear(ctx context.Context, id string) error
}
