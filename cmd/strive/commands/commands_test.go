package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.py")
	require.NoError(t, os.WriteFile(path, []byte("print(\"hi\")\n"), 0644))

	code, err := readSource([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "print(\"hi\")\n", code)
}

func TestReadSourceMissingFile(t *testing.T) {
	_, err := readSource([]string{filepath.Join(t.TempDir(), "missing.py")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.py")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 15, "short"},
		{"exactly-15-char", 15, "exactly-15-char"},
		{"github.com/acme/a-very-long-repository-name", 20, "github.com/acme/a..."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.maxLen))
	}
}
