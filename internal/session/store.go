package session

import (
	"database/sql"
	"fmt"
	"sync"
)

// 凭证在 credentials 表中的固定键，与前端 localStorage 的键保持一致
const (
	accessKey  = "token"
	refreshKey = "refresh_token"
)

// Session is the current authentication state. IsAuthenticated is true
// exactly when an access token is present; tokens are opaque strings.
type Session struct {
	AccessToken     string
	RefreshToken    string
	IsAuthenticated bool
}

// Store persists the platform credentials. Implementations must make every
// Set/Clear durable before returning so a concurrent Get observes the
// latest value.
type Store interface {
	Get() Session
	Set(access, refresh string) error
	Clear() error
}

// SQLiteStore keeps credentials in the local state database so the session
// survives a restart. Reads are served from memory; writes go through to
// the database first.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.RWMutex
	access  string
	refresh string
}

// NewSQLiteStore creates a store and rehydrates any persisted session
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	rows, err := db.Query("SELECT key, value FROM credentials WHERE key IN (?, ?)", accessKey, refreshKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		switch key {
		case accessKey:
			s.access = value
		case refreshKey:
			s.refresh = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get returns the current session state
func (s *SQLiteStore) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Session{
		AccessToken:     s.access,
		RefreshToken:    s.refresh,
		IsAuthenticated: s.access != "",
	}
}

// Set stores a new access token. An empty refresh keeps the existing
// refresh token, matching a refresh-only update.
func (s *SQLiteStore) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.upsert(accessKey, access); err != nil {
		return err
	}
	if refresh != "" {
		if err := s.upsert(refreshKey, refresh); err != nil {
			return err
		}
	}

	s.access = access
	if refresh != "" {
		s.refresh = refresh
	}
	return nil
}

// Clear removes both credentials
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM credentials WHERE key IN (?, ?)", accessKey, refreshKey); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	s.access = ""
	s.refresh = ""
	return nil
}

func (s *SQLiteStore) upsert(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to store credential %s: %w", key, err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests and ephemeral sessions
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the current session state
func (s *MemoryStore) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Session{
		AccessToken:     s.access,
		RefreshToken:    s.refresh,
		IsAuthenticated: s.access != "",
	}
}

// Set stores a new access token, keeping the refresh token when empty
func (s *MemoryStore) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	if refresh != "" {
		s.refresh = refresh
	}
	return nil
}

// Clear removes both credentials
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}
