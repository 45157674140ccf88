package db

import (
	"strings"

	"github.com/strive-code/strive/errors"
)

// ErrDatabaseClosed is returned for operations attempted after the job
// store's connection has been shut down, typically when the process
// exits before a job finishes recording its history.
var ErrDatabaseClosed = errors.New("database is closed")

// closedDriverMessages are the raw messages database/sql and the sqlite
// driver produce for a closed handle. Those cannot be wrapped at the
// source, so detection falls back to substring matching.
var closedDriverMessages = []string{
	"sql: database is closed",
	"database is closed",
}

// IsDatabaseClosed reports whether err means the connection is gone,
// whether as a wrapped ErrDatabaseClosed or a raw driver error.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	msg := err.Error()
	for _, driverMsg := range closedDriverMessages {
		if strings.Contains(msg, driverMsg) {
			return true
		}
	}
	return false
}
