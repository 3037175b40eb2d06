package memory

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hockeyclub/club-system/internal/core/domain"
)

func TestCredentialStore_FindByEmail(t *testing.T) {
	store, err := NewCredentialStore(DefaultSeed())
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	cred, err := store.FindByEmail(context.Background(), "admin@hockeyclub.com")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if cred.ID != "1" || cred.Role != domain.RoleAdmin {
		t.Fatalf("unexpected credential: %+v", cred)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.SecretHash), []byte("admin123")); err != nil {
		t.Fatalf("stored hash does not match seed password: %v", err)
	}
}

func TestCredentialStore_FindByEmail_CaseInsensitive(t *testing.T) {
	store, err := NewCredentialStore(DefaultSeed())
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	cred, err := store.FindByEmail(context.Background(), "ATHLETE@HockeyClub.com")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if cred.ID != "2" {
		t.Fatalf("expected athlete credential, got %+v", cred)
	}
}

func TestCredentialStore_FindByEmail_NotFound(t *testing.T) {
	store, err := NewCredentialStore(DefaultSeed())
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	if _, err := store.FindByEmail(context.Background(), "ghost@hockeyclub.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCredentialStore_ReturnsClone(t *testing.T) {
	store, err := NewCredentialStore(DefaultSeed())
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	first, _ := store.FindByEmail(context.Background(), "admin@hockeyclub.com")
	first.FirstName = "mutated"

	second, _ := store.FindByEmail(context.Background(), "admin@hockeyclub.com")
	if second.FirstName == "mutated" {
		t.Fatalf("store entries must not be mutable through lookups")
	}
}
