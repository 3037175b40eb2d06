// Package storage provides the durable key-value store the client keeps its
// session in. Backed by SQLite so the session survives restarts.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const (
	// KeySession holds the serialized session (user + access token).
	KeySession = "auth"
	// KeyToken holds the raw access token; the HTTP transport reads this key
	// directly. Legacy alongside KeySession, cleared together with it.
	KeyToken = "auth_token"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path. Use ":memory:" in tests.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS session_store (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init session store: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the value for key, or nil when the key is absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session_store WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session_store[%s]: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session_store[%s]: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_store WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session_store[%s]: %w", key, err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_store`)
	if err != nil {
		return fmt.Errorf("failed to clear session_store: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// AccessToken implements the transport's token source: it reads the raw token
// key so requests pick up whatever is durably stored, not what happens to be
// in memory.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	value, err := s.Get(ctx, KeyToken)
	if err != nil {
		return "", err
	}
	return string(value), nil
}
