package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

// defaultTokenTTL is the fixed lifetime of an issued token: 7 days.
const defaultTokenTTL = 168 * time.Hour

// dummyHash is a cost-10 bcrypt hash compared when the email is unknown, so
// a lookup miss costs the same as a password mismatch and login timing does
// not reveal whether an address is registered.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// tokenClaims is the signed token payload: registered claims carry the
// account id (sub), issuance, and expiry; email and role ride along for
// client-side display only and are never trusted for authorization.
type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService implements credential verification, token issuance, and token
// validation. Tokens are stateless HS256 JWTs; there is no revocation list:
// deactivating an account is the revocation mechanism, enforced by the live
// re-fetch in Validate.
type AuthService struct {
	repo      ports.AccountRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       zerolog.Logger

	// now is injectable so expiry boundaries are testable.
	now func() time.Time
}

func NewAuthService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// Login verifies the email/password pair and issues a signed token together
// with the cacheable profile.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	account, err := s.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("login succeeded")

	return &ports.LoginResult{
		Token:     token,
		Profile:   domain.ProfileOf(account),
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks the submitted credentials against the stored record.
// Unknown email and wrong password both fail with ErrInvalidCredentials;
// a deactivated account fails with the distinct ErrAccountDisabled no
// matter what password was submitted.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Msg("account lookup failed")
		return nil, fmt.Errorf("account lookup: %w", domain.ErrUnavailable)
	}

	// Deactivation wins over the password outcome: a disabled account must
	// answer ErrAccountDisabled whether or not the password is correct.
	if !account.Active {
		return nil, domain.ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	account.PasswordHash = ""
	return account, nil
}

// Issue mints a signed token for the account, expiring after the configured
// TTL. Nothing is persisted; the signature alone proves authenticity.
func (s *AuthService) Issue(account *domain.Account) (string, time.Time, error) {
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.tokenTTL)

	claims := tokenClaims{
		Email: account.Email,
		Role:  string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Validate parses and verifies the token, then re-fetches the account so
// the returned identity reflects the live record: a role change or
// deactivation since issuance takes effect on this very call. A token
// presented at exactly its expiry instant is already expired.
func (s *AuthService) Validate(ctx context.Context, token string) (*domain.Identity, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return nil, domain.ErrMalformedToken
	}

	account, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// The account was deleted after issuance; the token must not
			// keep working.
			return nil, domain.ErrAccountDisabled
		}
		s.log.Error().Err(err).Msg("account re-fetch failed")
		return nil, fmt.Errorf("account re-fetch: %w", domain.ErrUnavailable)
	}
	if !account.Active {
		return nil, domain.ErrAccountDisabled
	}

	return &domain.Identity{
		AccountID: account.ID,
		Email:     account.Email,
		Name:      account.Name,
		Role:      account.Role,
	}, nil
}

// classifyTokenError maps jwt parse failures onto the domain taxonomy.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrMalformedToken
	default:
		return domain.ErrMalformedToken
	}
}

// normalizeEmail lower-cases and trims the address so lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword produces the one-way bcrypt hash stored on an account.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
