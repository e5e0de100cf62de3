package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"projects",
		"materials",
		"time_entries",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestProjectsTable verifies the projects table constraints
func TestProjectsTable(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (id, name, client_name, status, priority, certificate_type, start_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"p1", "Smith Rewire", "J Smith", "planning", "medium", "none", "2024-03-01")
	require.NoError(t, err)

	// Status outside the allowed set is rejected by the CHECK constraint
	_, err = db.ExecContext(ctx,
		`INSERT INTO projects (id, name, client_name, status, priority, certificate_type, start_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"p2", "Bad Status", "J Smith", "paused", "medium", "none", "2024-03-01")
	require.Error(t, err, "should fail with invalid status")

	_, err = db.ExecContext(ctx,
		`INSERT INTO projects (id, name, client_name, status, priority, certificate_type, start_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"p3", "Bad Cert", "J Smith", "planning", "medium", "pat", "2024-03-01")
	require.Error(t, err, "should fail with invalid certificate type")
}

// TestOwnedTables verifies the materials and time_entries foreign keys
func TestOwnedTables(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO projects (id, name, client_name, status, priority, certificate_type, start_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"p1", "Smith Rewire", "J Smith", "planning", "medium", "none", "2024-03-01")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO materials (id, project_id, name, quantity, unit_cost, total, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"m1", "p1", "Double Socket", 6, 4.2, 25.2, 0)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO time_entries (id, project_id, entry_date, hours, description, position)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"t1", "p1", "2024-03-01", 2, "First fix", 0)
	require.NoError(t, err)

	// Orphan rows are rejected
	_, err = db.ExecContext(ctx,
		`INSERT INTO materials (id, project_id, name, quantity, unit_cost, total, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"m2", "invalid", "Backbox", 1, 1, 1, 0)
	require.Error(t, err, "should fail with invalid project_id")

	// Deleting the project cascades to owned rows
	_, err = db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, "p1")
	require.NoError(t, err)

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM materials WHERE project_id = ?`, "p1").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM time_entries WHERE project_id = ?`, "p1").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
