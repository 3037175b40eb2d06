// Package session holds the client's authenticated state: the current user,
// the access token, and the derived role predicates the router guard consults.
// The state is written through to durable storage on every mutation and
// rehydrated at startup.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hockeyclub/club-system/internal/core/domain"
)

// ErrLoginInProgress is returned when a login is submitted while a previous
// attempt is still in flight. Attempts are serialized rather than raced.
var ErrLoginInProgress = errors.New("login already in progress")

// AuthAPI is the slice of the HTTP adapter the store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context) error
}

// Storage is the durable key-value boundary. Get returns nil for absent keys.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

const (
	keySession = "auth"
	keyToken   = "auth_token"
)

// persistedSession is the explicit serialization boundary: only the user and
// the access token cross into durable storage. Loading and error state never
// do.
type persistedSession struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// Store is the client-side session holder. IsAuthenticated is always computed
// from user and token so it cannot drift from its constituents.
type Store struct {
	mu      sync.Mutex
	user    *domain.User
	token   string
	loading bool
	errMsg  string

	api     AuthAPI
	storage Storage
	log     zerolog.Logger
}

func NewStore(api AuthAPI, storage Storage, log zerolog.Logger) *Store {
	return &Store{api: api, storage: storage, log: log}
}

// Hydrate restores a persisted session at startup. Transient state (loading,
// error) always starts at its zero value.
func (s *Store) Hydrate(ctx context.Context) error {
	raw, err := s.storage.Get(ctx, keySession)
	if err != nil {
		return fmt.Errorf("read persisted session: %w", err)
	}
	if raw == nil {
		return nil
	}

	var ps persistedSession
	if err := json.Unmarshal(raw, &ps); err != nil {
		return fmt.Errorf("decode persisted session: %w", err)
	}

	s.mu.Lock()
	s.user = ps.User
	s.token = ps.AccessToken
	s.loading = false
	s.errMsg = ""
	s.mu.Unlock()

	if ps.User != nil {
		s.log.Info().Str("user", ps.User.FullName()).Msg("session restored")
	}
	return nil
}

// Login authenticates and persists the resulting session. The loading flag is
// cleared on every exit path; the error message survives until the next
// attempt so the UI can show it.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrLoginInProgress
	}
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.mu.Lock()
		s.errMsg = loginErrorMessage(err)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()

	if err := s.persist(ctx, user, token); err != nil {
		// The in-memory session is valid either way; it just won't survive a
		// restart.
		s.log.Error().Err(err).Msg("failed to persist session")
	}
	return nil
}

// Logout tells the server best-effort, then unconditionally clears the local
// session and storage. A network failure must never leave the user signed in.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("remote logout failed, clearing session anyway")
	}
	s.clear(ctx)
}

// ForceSignOut clears the session without the remote call. Invoked by the
// HTTP adapter when a non-login request comes back unauthorized.
func (s *Store) ForceSignOut(ctx context.Context) {
	s.clear(ctx)
}

func (s *Store) clear(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.errMsg = ""
	s.mu.Unlock()

	for _, key := range []string{keySession, keyToken} {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to clear persisted session")
		}
	}
}

func (s *Store) persist(ctx context.Context, user *domain.User, token string) error {
	raw, err := json.Marshal(persistedSession{User: user, AccessToken: token})
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, keySession, raw); err != nil {
		return err
	}
	return s.storage.Set(ctx, keyToken, []byte(token))
}

// --- Derived state ---

func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	clone := *s.user
	return &clone
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

func (s *Store) Role() domain.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

func (s *Store) IsAdmin() bool {
	return s.Role() == domain.RoleAdmin
}

func (s *Store) IsAthlete() bool {
	return s.Role() == domain.RoleAthlete
}

func (s *Store) FullName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.FullName()
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the human-readable message of the last failed login, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func loginErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
