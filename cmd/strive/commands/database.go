package commands

import (
	"database/sql"

	"github.com/strive-code/strive/config"
	"github.com/strive-code/strive/db"
	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/logger"
)

// openDatabase opens and migrates the job history database at the given
// path. If dbPath is empty, the configured path is used.
func openDatabase(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load configuration")
		}
		dbPath = cfg.GetDatabasePath()
	}

	database, err := db.OpenWithMigrations(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}

	return database, nil
}
