package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/strive-code/strive/errors"
)

// startupPragmas run against every freshly opened handle, in order.
// WAL keeps reads open while a worker commits job progress; the busy
// timeout covers the window where the CLI and a running job share the
// store file.
var startupPragmas = []struct {
	stmt string
	desc string
}{
	{"PRAGMA journal_mode = WAL", "enable WAL mode"},
	{"PRAGMA foreign_keys = ON", "enable foreign keys"},
	{"PRAGMA busy_timeout = 5000", "set busy timeout"},
}

// Open opens the SQLite job store at path. A nil logger is allowed and
// silences open-time logging.
func Open(path string, logger *zap.SugaredLogger) (*sql.DB, error) {
	if logger != nil {
		logger.Debugw("Opening database", "path", path)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	for _, p := range startupPragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "failed to %s", p.desc)
		}
	}
	if logger != nil {
		logger.Infow("Database opened", "path", path, "wal_mode", true, "foreign_keys", true)
	}
	return db, nil
}

// OpenWithMigrations opens the job store and brings its schema up to
// date before returning the handle.
func OpenWithMigrations(path string, logger *zap.SugaredLogger) (*sql.DB, error) {
	db, err := Open(path, logger)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, logger); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}
	return db, nil
}
