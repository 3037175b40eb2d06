package ports

import (
	"context"

	"github.com/hockeyclub/club-system/internal/core/domain"
)

type AuthService interface {
	// Login verifies the credentials and returns a signed session token plus
	// the user without its secret. Unknown email and wrong password both fail
	// with domain.ErrInvalidCredentials; a matched but deactivated account
	// fails with domain.ErrAccountDisabled.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// Logout revokes the presented token until its natural expiry when a
	// denylist is configured. Invalid tokens are ignored.
	Logout(ctx context.Context, token string) error
}
