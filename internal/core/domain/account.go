package domain

import (
	"errors"
	"time"
)

// Credential errors. ErrInvalidCredentials deliberately covers both an
// unknown email and a wrong password so that login never reveals whether an
// address is registered. ErrAccountDisabled is distinct: the account provably
// exists and the credentials or token may be valid, but the account was
// deactivated by an administrator.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
)

// Token errors. All three surface to the end user as a uniform "session
// expired" message but are logged distinctly for diagnosis.
var (
	ErrMissingToken     = errors.New("missing token")
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
)

// ErrForbidden is an authorization failure: authenticated, but the caller's
// role is not in the operation's allowed set. Maps to 403, never 401.
var ErrForbidden = errors.New("access forbidden")

// ErrUnavailable marks a transient storage failure (timeout, connectivity).
// It is safe for the caller to retry and must never be folded into the
// credential errors, or a flaky database would log users out.
var ErrUnavailable = errors.New("service unavailable")

// ErrSessionNotFound is returned by the session store when no session is
// persisted under the given id (or it has expired).
var ErrSessionNotFound = errors.New("session not found")

// Account is a registered user of the accounting office.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the subset of an account that the client may cache for UI
// rendering. The cached role is advisory only; server-side authorization
// always re-derives the role from the live account record.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Identity is the server-derived result of validating a token: the account
// id and email come from the token subject, the role from the live account
// record (never from the stale token payload).
type Identity struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
}

// Session is the persisted {token, profile} pair behind the session store.
type Session struct {
	Token     string    `json:"token"`
	Profile   Profile   `json:"profile"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileOf builds the cacheable profile view of an account.
func ProfileOf(a *Account) Profile {
	return Profile{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}
