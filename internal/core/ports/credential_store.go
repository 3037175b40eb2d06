package ports

import (
	"context"

	"github.com/hockeyclub/club-system/internal/core/domain"
)

// CredentialStore is the read-only source of valid email to user+secret
// mappings. Implementations must treat the email as a case-insensitive key and
// return domain.ErrUserNotFound when no entry matches.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
}
