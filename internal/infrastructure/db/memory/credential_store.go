// Package memory holds the Phase-1 in-memory credential table. It satisfies
// ports.CredentialStore so it can be swapped for a persistent store without
// touching the authenticator.
package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hockeyclub/club-system/internal/core/domain"
)

// SeedUser is a plaintext fixture entry; the password is hashed at
// construction and discarded.
type SeedUser struct {
	User     domain.User
	Password string
}

// CredentialStore is a read-only map from lowercased email to credential.
// Seeded once at process start, never mutated afterwards, so lookups need no
// locking.
type CredentialStore struct {
	entries map[string]*domain.Credential
}

func NewCredentialStore(seed []SeedUser) (*CredentialStore, error) {
	entries := make(map[string]*domain.Credential, len(seed))
	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash seed password for %s: %w", s.User.Email, err)
		}
		key := strings.ToLower(s.User.Email)
		entries[key] = &domain.Credential{User: s.User, SecretHash: string(hash)}
	}
	return &CredentialStore{entries: entries}, nil
}

func (s *CredentialStore) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	cred, ok := s.entries[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *cred
	return &clone, nil
}

// DefaultSeed returns the Phase-1 account fixtures.
func DefaultSeed() []SeedUser {
	return []SeedUser{
		{
			User: domain.User{
				ID:        "1",
				Email:     "admin@hockeyclub.com",
				FirstName: "João",
				LastName:  "Silva",
				Role:      domain.RoleAdmin,
				IsActive:  true,
				CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			Password: "admin123",
		},
		{
			User: domain.User{
				ID:        "2",
				Email:     "athlete@hockeyclub.com",
				FirstName: "Maria",
				LastName:  "Santos",
				Role:      domain.RoleAthlete,
				IsActive:  true,
				CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				UpdatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			},
			Password: "athlete123",
		},
		{
			User: domain.User{
				ID:        "3",
				Email:     "athlete2@hockeyclub.com",
				FirstName: "Pedro",
				LastName:  "Oliveira",
				Role:      domain.RoleAthlete,
				IsActive:  true,
				CreatedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
				UpdatedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			},
			Password: "athlete123",
		},
	}
}
