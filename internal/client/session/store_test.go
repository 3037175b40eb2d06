package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hockeyclub/club-system/internal/core/domain"
)

type stubAPI struct {
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
	logoutFn func(ctx context.Context) error
}

func (s *stubAPI) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAPI) Logout(ctx context.Context) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx)
}

type memStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string][]byte)}
}

func (m *memStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func testUser() *domain.User {
	return &domain.User{ID: "1", Email: "admin@hockeyclub.com", FirstName: "João", LastName: "Silva", Role: domain.RoleAdmin, IsActive: true}
}

func TestStore_Login_PersistsSession(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	api := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "signed-token", testUser(), nil
		},
	}
	store := NewStore(api, storage, zerolog.Nop())

	if err := store.Login(ctx, "admin@hockeyclub.com", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}
	if !store.IsAdmin() || store.IsAthlete() {
		t.Fatalf("role predicates wrong: %v", store.Role())
	}
	if store.FullName() != "João Silva" {
		t.Fatalf("unexpected full name: %q", store.FullName())
	}
	if store.Err() != "" || store.IsLoading() {
		t.Fatalf("transient state must be clean after success")
	}

	raw := storage.data[keySession]
	if raw == nil {
		t.Fatalf("session not persisted")
	}
	var ps persistedSession
	if err := json.Unmarshal(raw, &ps); err != nil {
		t.Fatalf("decode persisted session: %v", err)
	}
	if ps.AccessToken != "signed-token" || ps.User == nil || ps.User.ID != "1" {
		t.Fatalf("unexpected persisted session: %+v", ps)
	}
	if string(storage.data[keyToken]) != "signed-token" {
		t.Fatalf("raw token not persisted")
	}
}

func TestStore_Login_FailureRecordsError(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	api := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, errors.New("invalid credentials")
		},
	}
	store := NewStore(api, storage, zerolog.Nop())

	if err := store.Login(ctx, "admin@hockeyclub.com", "wrongpass"); err == nil {
		t.Fatalf("expected login error")
	}
	if store.IsAuthenticated() {
		t.Fatalf("failed login must not authenticate")
	}
	if store.Err() != "invalid credentials" {
		t.Fatalf("unexpected error message: %q", store.Err())
	}
	if store.IsLoading() {
		t.Fatalf("loading must be cleared after failure")
	}
	if len(storage.data) != 0 {
		t.Fatalf("nothing should be persisted on failure: %v", storage.data)
	}
}

func TestStore_Login_SecondAttemptClearsError(t *testing.T) {
	ctx := context.Background()
	fail := true
	api := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if fail {
				return "", nil, errors.New("invalid credentials")
			}
			return "signed-token", testUser(), nil
		},
	}
	store := NewStore(api, newMemStorage(), zerolog.Nop())

	_ = store.Login(ctx, "admin@hockeyclub.com", "wrongpass")
	if store.Err() == "" {
		t.Fatalf("expected error after first attempt")
	}

	fail = false
	if err := store.Login(ctx, "admin@hockeyclub.com", "admin123"); err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if store.Err() != "" {
		t.Fatalf("error must be cleared by the next attempt, got %q", store.Err())
	}
}

func TestStore_Login_SerializesAttempts(t *testing.T) {
	ctx := context.Background()
	block := make(chan struct{})
	started := make(chan struct{})
	api := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			close(started)
			<-block
			return "signed-token", testUser(), nil
		},
	}
	store := NewStore(api, newMemStorage(), zerolog.Nop())

	done := make(chan error, 1)
	go func() {
		done <- store.Login(ctx, "admin@hockeyclub.com", "admin123")
	}()
	<-started

	if err := store.Login(ctx, "admin@hockeyclub.com", "admin123"); !errors.Is(err, ErrLoginInProgress) {
		t.Fatalf("expected ErrLoginInProgress, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first login failed: %v", err)
	}
}

func TestStore_Logout_ClearsDespiteRemoteFailure(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	api := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "signed-token", testUser(), nil
		},
		logoutFn: func(ctx context.Context) error {
			return errors.New("network down")
		},
	}
	store := NewStore(api, storage, zerolog.Nop())

	if err := store.Login(ctx, "admin@hockeyclub.com", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	store.Logout(ctx)

	if store.IsAuthenticated() {
		t.Fatalf("logout must clear the session even when the server is unreachable")
	}
	if len(storage.data) != 0 {
		t.Fatalf("storage must be cleared: %v", storage.data)
	}
}

func TestStore_Hydrate(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	raw, _ := json.Marshal(persistedSession{User: testUser(), AccessToken: "stored-token"})
	storage.data[keySession] = raw

	store := NewStore(&stubAPI{}, storage, zerolog.Nop())
	if err := store.Hydrate(ctx); err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if !store.IsAuthenticated() {
		t.Fatalf("expected authenticated session after hydrate")
	}
	if store.Token() != "stored-token" {
		t.Fatalf("unexpected token: %q", store.Token())
	}
}

func TestStore_Hydrate_NothingPersisted(t *testing.T) {
	store := NewStore(&stubAPI{}, newMemStorage(), zerolog.Nop())
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate failed: %v", err)
	}
	if store.IsAuthenticated() {
		t.Fatalf("empty storage must hydrate to a signed-out session")
	}
}

func TestStore_ForceSignOut(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	remoteCalled := false
	api := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "signed-token", testUser(), nil
		},
		logoutFn: func(ctx context.Context) error {
			remoteCalled = true
			return nil
		},
	}
	store := NewStore(api, storage, zerolog.Nop())

	if err := store.Login(ctx, "admin@hockeyclub.com", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	store.ForceSignOut(ctx)

	if store.IsAuthenticated() {
		t.Fatalf("force sign-out must clear the session")
	}
	if remoteCalled {
		t.Fatalf("force sign-out must not call the server")
	}
	if len(storage.data) != 0 {
		t.Fatalf("storage must be cleared: %v", storage.data)
	}
}

func TestStore_User_ReturnsClone(t *testing.T) {
	ctx := context.Background()
	api := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "signed-token", testUser(), nil
		},
	}
	store := NewStore(api, newMemStorage(), zerolog.Nop())
	if err := store.Login(ctx, "admin@hockeyclub.com", "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	u := store.User()
	u.FirstName = "mutated"
	if store.User().FirstName == "mutated" {
		t.Fatalf("session user must not be mutable through the getter")
	}
}
