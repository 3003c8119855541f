package session

import (
	"context"
	"fmt"
	"time"

	"pocdesk/internal/api"
)

// Lookup kinds stored in the cache. They match the backend lookup endpoints.
const (
	LookupSalesPersons = "sales-persons"
	LookupUsers        = "users"
	LookupApprovers    = "approvers"
)

// CachedLookup returns the cached candidates for a lookup kind if every row
// was fetched within ttl. A stale or empty cache returns ok=false and the
// caller refetches from the backend.
func (s *Store) CachedLookup(ctx context.Context, kind string, ttl time.Duration) ([]api.Person, bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT employee_id, name, fetched_at FROM lookup_cache WHERE kind = ? ORDER BY name`, kind)
	if err != nil {
		return nil, false, fmt.Errorf("reading lookup cache: %w", err)
	}
	defer rows.Close()

	cutoff := time.Now().Add(-ttl)
	var people []api.Person
	for rows.Next() {
		var p api.Person
		var fetchedAt string
		if err := rows.Scan(&p.EmployeeID, &p.Name, &fetchedAt); err != nil {
			return nil, false, fmt.Errorf("scanning lookup cache row: %w", err)
		}
		t, err := time.Parse(time.RFC3339, fetchedAt)
		if err != nil || t.Before(cutoff) {
			return nil, false, nil
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating lookup cache: %w", err)
	}
	if len(people) == 0 {
		return nil, false, nil
	}
	return people, true, nil
}

// SaveLookup replaces the cached candidates for a lookup kind.
func (s *Store) SaveLookup(ctx context.Context, kind string, people []api.Person) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting lookup cache transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lookup_cache WHERE kind = ?`, kind); err != nil {
		return fmt.Errorf("clearing lookup cache: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range people {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lookup_cache (kind, employee_id, name, fetched_at) VALUES (?, ?, ?, ?)`,
			kind, p.EmployeeID, p.Name, now); err != nil {
			return fmt.Errorf("caching lookup entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing lookup cache: %w", err)
	}
	committed = true
	return nil
}
