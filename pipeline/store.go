package pipeline

import (
	"database/sql"
	"time"

	"github.com/strive-code/strive/errors"
)

// Store handles persistence of reconstruction jobs
type Store struct {
	db *sql.DB
}

// NewStore creates a new job store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateJob inserts a new job into the database
func (s *Store) CreateJob(job *Job) error {
	modsJSON, err := MarshalModifications(job.Modifications)
	if err != nil {
		return errors.Wrap(err, "failed to marshal modifications")
	}

	query := `
		INSERT INTO jobs (
			id, source, source_name, target_language,
			modifications, optimize, state,
			files_enumerated, files_transpiled, new_location,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	modifications := sql.NullString{String: modsJSON, Valid: modsJSON != ""}
	newLocation := sql.NullString{String: job.NewLocation, Valid: job.NewLocation != ""}

	_, err = s.db.Exec(query,
		job.ID,
		job.Source,
		job.SourceName,
		job.TargetLanguage,
		modifications,
		job.Optimize,
		job.State,
		job.FilesEnumerated,
		job.FilesTranspiled,
		newLocation,
		job.CreatedAt,
		job.UpdatedAt,
	)

	if err != nil {
		return errors.Wrap(err, "failed to create job")
	}

	return nil
}

// GetJob retrieves a job by ID
func (s *Store) GetJob(id string) (*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`

	var job Job
	err := scanJobRow(s.db.QueryRow(query, id), &job)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Newf("job not found: %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get job")
	}

	return &job, nil
}

// UpdateJob updates an existing job in the database.
// The request fields (source, target language, modifications) are immutable
// and never rewritten.
func (s *Store) UpdateJob(job *Job) error {
	query := `
		UPDATE jobs
		SET source_name = ?,
		    state = ?,
		    error = ?,
		    files_enumerated = ?,
		    files_transpiled = ?,
		    new_location = ?,
		    started_at = ?,
		    completed_at = ?,
		    updated_at = ?
		WHERE id = ?
	`

	errorMsg := sql.NullString{String: job.Error, Valid: job.Error != ""}
	newLocation := sql.NullString{String: job.NewLocation, Valid: job.NewLocation != ""}

	result, err := s.db.Exec(query,
		job.SourceName,
		job.State,
		errorMsg,
		job.FilesEnumerated,
		job.FilesTranspiled,
		newLocation,
		job.StartedAt,
		job.CompletedAt,
		job.UpdatedAt,
		job.ID,
	)

	if err != nil {
		return errors.Wrap(err, "failed to update job")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return errors.Newf("job not found: %s", job.ID)
	}

	return nil
}

// ListJobs returns jobs ordered newest first, optionally filtered by state
func (s *Store) ListJobs(state *JobState, limit int) ([]*Job, error) {
	var query string
	var args []interface{}

	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	if state != nil {
		query = baseQuery + ` WHERE state = ? ORDER BY created_at DESC LIMIT ?`
		args = []interface{}{*state, limit}
	} else {
		query = baseQuery + ` ORDER BY created_at DESC LIMIT ?`
		args = []interface{}{limit}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}
	defer rows.Close()

	return scanJobs(rows, "jobs")
}

// ListActiveJobs returns all jobs that have not reached a terminal state
func (s *Store) ListActiveJobs(limit int) ([]*Job, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs
		WHERE state NOT IN ('done', 'failed')
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active jobs")
	}
	defer rows.Close()

	return scanJobs(rows, "active jobs")
}

// scanJobs is a helper that scans multiple jobs from query rows
func scanJobs(rows *sql.Rows, context string) ([]*Job, error) {
	var jobs []*Job
	for rows.Next() {
		var job Job
		if err := scanJobRows(rows, &job); err != nil {
			return nil, errors.Wrap(err, "failed to scan job")
		}
		jobs = append(jobs, &job)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "error iterating %s", context)
	}

	return jobs, nil
}

// DeleteJob removes a job from the database
func (s *Store) DeleteJob(id string) error {
	query := `DELETE FROM jobs WHERE id = ?`

	result, err := s.db.Exec(query, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete job")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to get rows affected")
	}

	if rows == 0 {
		return errors.Newf("job not found: %s", id)
	}

	return nil
}

// CleanupOldJobs removes terminal jobs older than the specified duration
func (s *Store) CleanupOldJobs(olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	query := `
		DELETE FROM jobs
		WHERE state IN ('done', 'failed')
		  AND updated_at < ?
	`

	result, err := s.db.Exec(query, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "failed to cleanup old jobs")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get rows affected")
	}

	return int(rows), nil
}
