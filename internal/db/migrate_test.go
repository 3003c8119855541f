package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesTables(t *testing.T) {
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"session", "lookup_cache"} {
		var name string
		err := db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestSession_SingleRowConstraint(t *testing.T) {
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO session (id, token, employee_id, name, email, role, saved_at)
		VALUES (1, 't', 'EMP001', 'A', 'a@x.com', 'user', '2026-08-29T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO session (id, token, employee_id, name, email, role, saved_at)
		VALUES (2, 't2', 'EMP002', 'B', 'b@x.com', 'user', '2026-08-29T00:00:00Z')`)
	assert.Error(t, err)
}
