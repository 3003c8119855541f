// Package session persists the active login locally so the tracker does not
// ask for credentials on every launch. The backend remains the authority on
// whether the stored token is still valid.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"pocdesk/internal/domain"
)

// Session is a stored login: the bearer token plus the profile returned with it.
type Session struct {
	Token   string
	Profile domain.UserProfile
	SavedAt time.Time
}

// Store persists the single active session in SQLite. It implements the API
// client's TokenSource, so token reads must stay cheap; the current session is
// cached in memory and the database is only touched on mutation and startup.
type Store struct {
	db *sql.DB

	mu      sync.RWMutex
	current *Session
}

// NewStore creates a Store backed by db and loads any persisted session.
func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.current = current
	return s, nil
}

func (s *Store) load(ctx context.Context) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT token, employee_id, name, email, role, saved_at FROM session WHERE id = 1`)

	var sess Session
	var savedAt string
	err := row.Scan(&sess.Token, &sess.Profile.EmployeeID, &sess.Profile.Name,
		&sess.Profile.Email, &sess.Profile.Role, &savedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	sess.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
	return &sess, nil
}

// Save replaces the stored session with a fresh login.
func (s *Store) Save(ctx context.Context, token string, profile domain.UserProfile) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session (id, token, employee_id, name, email, role, saved_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			employee_id = excluded.employee_id,
			name = excluded.name,
			email = excluded.email,
			role = excluded.role,
			saved_at = excluded.saved_at`,
		token, profile.EmployeeID, profile.Name, profile.Email, profile.Role,
		now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	s.mu.Lock()
	s.current = &Session{Token: token, Profile: profile, SavedAt: now}
	s.mu.Unlock()
	return nil
}

// Clear removes the stored session. It is called on logout and whenever the
// backend rejects the token.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

// Current returns the active session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Token implements the API client's TokenSource. Returns "" when logged out,
// which makes the client send no Authorization header.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}
