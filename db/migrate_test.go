package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWithMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	database, err := OpenWithMigrations(dbPath, nil)
	require.NoError(t, err)
	require.NotNil(t, database)
	defer database.Close()

	// Both the migration bookkeeping table and the jobs table exist.
	for _, table := range []string{"schema_migrations", "jobs"} {
		var count int
		err = database.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist after migrations", table)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	database, err := Open(dbPath, nil)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database, nil))
	require.NoError(t, Migrate(database, nil), "running migrations multiple times should be safe")

	var applied int
	err = database.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
}

func TestMigrateClosedDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	database, err := Open(dbPath, nil)
	require.NoError(t, err)
	database.Close()

	err = Migrate(database, nil)
	require.Error(t, err)
	assert.True(t, IsDatabaseClosed(err))
}
