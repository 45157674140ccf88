package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpenAppliesStartupPragmas(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "jobs.db"), nil)
	require.NoError(t, err)
	defer database.Close()

	checks := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"busy_timeout", "5000"},
	}
	for _, c := range checks {
		var got string
		require.NoError(t, database.QueryRow("PRAGMA "+c.pragma).Scan(&got))
		assert.Equal(t, c.want, got, "PRAGMA %s", c.pragma)
	}
}

func TestOpenCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	database, err := Open(path, nil)
	require.NoError(t, err)
	defer database.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpenUnwritablePath(t *testing.T) {
	database, err := Open("/nonexistent/strive/jobs.db", nil)
	if err == nil && database != nil {
		// Some platforms defer the failure to first use
		err = database.Ping()
		database.Close()
	}
	assert.Error(t, err)
}

func TestOpenWithLogger(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "jobs.db"), zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	require.NotNil(t, database)
	database.Close()
}
