package ports

import (
	"context"
	"time"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// LoginResult is returned on a successful login: the signed bearer token,
// the cacheable profile, and the token's expiry instant.
type LoginResult struct {
	Token     string
	Profile   domain.Profile
	ExpiresAt time.Time
}

// AuthService is the authentication core: credential verification, token
// issuance, and token validation with a live account re-fetch.
type AuthService interface {
	// Login verifies the email/password pair and issues a signed token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Validate checks the token's structure, signature, and expiry, then
	// re-fetches the account so deactivation and role changes take effect
	// immediately. The returned identity reflects the live record.
	Validate(ctx context.Context, token string) (*domain.Identity, error)
}
