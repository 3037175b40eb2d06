package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hockeyclub/club-system/internal/core/domain"
	"github.com/hockeyclub/club-system/internal/core/ports"
)

// AuthService verifies credentials against the credential store and issues
// session tokens. Stateless per request; nothing is persisted server-side on
// login.
type AuthService struct {
	store       ports.CredentialStore
	issuer      ports.TokenIssuer
	verifier    ports.TokenVerifier
	denylist    ports.TokenDenylist // nil when revocation is not configured
	verifyDelay time.Duration
}

func NewAuthService(store ports.CredentialStore, issuer ports.TokenIssuer, verifier ports.TokenVerifier, denylist ports.TokenDenylist, verifyDelay time.Duration) *AuthService {
	return &AuthService{
		store:       store,
		issuer:      issuer,
		verifier:    verifier,
		denylist:    denylist,
		verifyDelay: verifyDelay,
	}
}

// Login looks up the email case-insensitively and checks the secret. An
// unknown email and a wrong password produce the same error so the response
// does not reveal which check failed. The active flag is checked only after
// the password matched, for the same reason.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.verifyDelay > 0 {
		select {
		case <-time.After(s.verifyDelay):
		case <-ctx.Done():
			return "", nil, ctx.Err()
		}
	}

	cred, err := s.store.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.SecretHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !cred.IsActive {
		return "", nil, domain.ErrAccountDisabled
	}

	token, err := s.issuer.Issue(&cred.User)
	if err != nil {
		return "", nil, err
	}

	user := cred.User
	return token, &user, nil
}

// Logout revokes the presented token for its remaining lifetime. A token that
// does not verify carries no session to revoke, so it is silently ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.denylist == nil || token == "" {
		return nil
	}

	claims, err := s.verifier.Verify(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, token, ttl)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
