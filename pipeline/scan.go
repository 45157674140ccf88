package pipeline

import (
	"database/sql"
	"fmt"
)

// jobColumns is the SELECT list shared by every job query. Order must
// match jobScanner.targets.
const jobColumns = `id, source, source_name, target_language,
	modifications, optimize, state, error,
	files_enumerated, files_transpiled, new_location,
	created_at, started_at, completed_at, updated_at`

// jobScanner adapts one database row to a Job. Nullable columns scan
// into intermediates here and land on the struct in finish, so a NULL
// never forces pointer fields into the Job schema.
type jobScanner struct {
	job *Job

	modificationsJSON sql.NullString
	errorMsg          sql.NullString
	newLocation       sql.NullString
	startedAt         sql.NullTime
	completedAt       sql.NullTime
}

// targets returns scan destinations in jobColumns order
func (s *jobScanner) targets() []interface{} {
	return []interface{}{
		&s.job.ID,
		&s.job.Source,
		&s.job.SourceName,
		&s.job.TargetLanguage,
		&s.modificationsJSON,
		&s.job.Optimize,
		&s.job.State,
		&s.errorMsg,
		&s.job.FilesEnumerated,
		&s.job.FilesTranspiled,
		&s.newLocation,
		&s.job.CreatedAt,
		&s.startedAt,
		&s.completedAt,
		&s.job.UpdatedAt,
	}
}

// finish moves the nullable intermediates onto the job once Scan has
// filled them
func (s *jobScanner) finish() error {
	if s.modificationsJSON.Valid {
		mods, err := UnmarshalModifications(s.modificationsJSON.String)
		if err != nil {
			return fmt.Errorf("failed to unmarshal modifications for job %s: %w", s.job.ID, err)
		}
		s.job.Modifications = mods
	}

	if s.errorMsg.Valid {
		s.job.Error = s.errorMsg.String
	}
	if s.newLocation.Valid {
		s.job.NewLocation = s.newLocation.String
	}
	if s.startedAt.Valid {
		s.job.StartedAt = &s.startedAt.Time
	}
	if s.completedAt.Valid {
		s.job.CompletedAt = &s.completedAt.Time
	}

	return nil
}

// scanJobRow scans a single job from a sql.Row. Scan errors come back
// unwrapped so callers can distinguish sql.ErrNoRows.
func scanJobRow(row *sql.Row, job *Job) error {
	s := jobScanner{job: job}
	if err := row.Scan(s.targets()...); err != nil {
		return err
	}
	return s.finish()
}

// scanJobRows scans the current result-set row into job
func scanJobRows(rows *sql.Rows, job *Job) error {
	s := jobScanner{job: job}
	if err := rows.Scan(s.targets()...); err != nil {
		return err
	}
	return s.finish()
}
