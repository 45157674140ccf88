package db

import (
	"database/sql"
	"embed"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/strive-code/strive/errors"
)

//go:embed sqlite/migrations/*.sql
var migrations embed.FS

const migrationDir = "sqlite/migrations"

// bootstrapVersion creates the schema_migrations table and then records
// itself in it. It is the only migration allowed to run without the
// table existing.
const bootstrapVersion = "000"

// Migrate brings the database schema up to date by applying embedded
// migrations in filename order. Safe to run repeatedly.
// If logger is provided, migration progress is logged; otherwise silent.
func Migrate(db *sql.DB, logger *zap.SugaredLogger) error {
	files, err := migrationFiles()
	if err != nil {
		return err
	}

	applied := 0
	for _, filename := range files {
		version := strings.SplitN(filename, "_", 2)[0]

		done, err := isApplied(db, filename, version)
		if err != nil {
			return err
		}
		if done {
			if logger != nil {
				logger.Debugw("Skipping migration (already applied)",
					"migration", filename,
					"version", version,
				)
			}
			continue
		}

		if logger != nil {
			logger.Infow("Applying migration",
				"migration", filename,
				"version", version,
			)
		}
		if err := apply(db, filename, version); err != nil {
			return err
		}
		applied++
	}

	if logger != nil {
		logger.Infow("Migrations complete",
			"applied", applied,
			"total_migrations", len(files),
		)
	}

	return nil
}

// migrationFiles lists the embedded .sql migrations in apply order
func migrationFiles() ([]string, error) {
	entries, err := migrations.ReadDir(migrationDir)
	if err != nil {
		return nil, errors.Wrap(err, "read migrations")
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// isApplied reports whether the version is recorded in schema_migrations.
// A query failure means the table itself is missing, which is only legal
// before the bootstrap migration has run.
func isApplied(db *sql.DB, filename, version string) (bool, error) {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)", version).Scan(&exists)
	if err != nil {
		if version != bootstrapVersion {
			return false, errors.Newf("schema_migrations table missing, but migration is not %s: %s", bootstrapVersion, filename)
		}
		return false, nil
	}
	return exists, nil
}

// apply executes one migration and records its version, both in a single
// transaction so a failed migration leaves no trace
func apply(db *sql.DB, filename, version string) error {
	sqlBytes, err := migrations.ReadFile(path.Join(migrationDir, filename))
	if err != nil {
		return errors.Wrapf(err, "read %s", filename)
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrapf(err, "begin tx for %s", filename)
	}

	if _, err := tx.Exec(string(sqlBytes)); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "execute %s", filename)
	}

	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "record %s", filename)
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit %s", filename)
	}
	return nil
}
