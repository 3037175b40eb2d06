package ports

import (
	"context"
	"time"

	"github.com/hockeyclub/club-system/internal/core/domain"
)

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer mints a signed session token for a user.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier checks a token's signature and validity window.
// Returns domain.ErrTokenExpired or domain.ErrTokenInvalid on failure.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// TokenDenylist marks tokens as revoked before their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
