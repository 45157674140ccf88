// Package pipeline orchestrates repository reconstruction jobs: clone,
// enumerate, per-file transpilation, assembly, and publishing.
package pipeline

import (
	"crypto/rand"
	"encoding/json"
	"time"

	"github.com/mr-tron/base58"

	"github.com/strive-code/strive/errors"
)

// JobState represents the current stage of a reconstruction job
type JobState string

const (
	JobStateCreated    JobState = "created"
	JobStateCloned     JobState = "cloned"
	JobStateEnumerated JobState = "enumerated"
	JobStateProcessing JobState = "processing"
	JobStateAssembled  JobState = "assembled"
	JobStatePublished  JobState = "published"
	JobStateDone       JobState = "done"
	JobStateFailed     JobState = "failed"
)

// IsValidState returns true if the state string is a valid JobState
func IsValidState(s string) bool {
	switch JobState(s) {
	case JobStateCreated, JobStateCloned, JobStateEnumerated, JobStateProcessing,
		JobStateAssembled, JobStatePublished, JobStateDone, JobStateFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if a job in this state will never advance again
func (s JobState) IsTerminal() bool {
	return s == JobStateDone || s == JobStateFailed
}

// FileStatus records the outcome of processing one enumerated file
type FileStatus string

const (
	FileStatusPending    FileStatus = "pending"
	FileStatusTranspiled FileStatus = "transpiled"
	FileStatusSkipped    FileStatus = "skipped"
	FileStatusFailed     FileStatus = "failed"
)

// FileRecord is the per-file outcome of a reconstruction job. Records are
// kept in memory for reporting; only their counts are persisted.
type FileRecord struct {
	Path       string     `json:"path"`
	OutputPath string     `json:"output_path,omitempty"`
	Language   string     `json:"language,omitempty"`
	Status     FileStatus `json:"status"`
	Error      string     `json:"error,omitempty"`
}

// Request holds the immutable parameters of a reconstruction job.
type Request struct {
	Source         string   `json:"source_location"`
	TargetLanguage string   `json:"target_language"`
	Modifications  []string `json:"modifications,omitempty"`
	Optimize       bool     `json:"optimize"`
}

// Job represents one repository reconstruction run
type Job struct {
	ID              string     `json:"id"`
	Source          string     `json:"source"`
	SourceName      string     `json:"source_name,omitempty"`
	TargetLanguage  string     `json:"target_language"`
	Modifications   []string   `json:"modifications,omitempty"`
	Optimize        bool       `json:"optimize"`
	State           JobState   `json:"state"`
	Error           string     `json:"error,omitempty"`
	FilesEnumerated int        `json:"files_enumerated"`
	FilesTranspiled int        `json:"files_transpiled"`
	NewLocation     string     `json:"new_location,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewJob creates a job in the created state from a reconstruction request.
func NewJob(req Request) (*Job, error) {
	if req.Source == "" {
		return nil, errors.New("source location cannot be empty")
	}
	if req.TargetLanguage == "" {
		return nil, errors.New("target language cannot be empty")
	}

	jobID, err := NewJobID()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate job ID")
	}

	now := time.Now()
	return &Job{
		ID:             jobID,
		Source:         req.Source,
		TargetLanguage: req.TargetLanguage,
		Modifications:  req.Modifications,
		Optimize:       req.Optimize,
		State:          JobStateCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// NewJobID generates a short unique job identifier.
// Format: JB + base58(8 random bytes)
func NewJobID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}
	return "JB" + base58.Encode(buf), nil
}

// Start records the moment the runner picked up the job
func (j *Job) Start() {
	now := time.Now()
	j.StartedAt = &now
	j.UpdatedAt = now
}

// MarkCloned marks the source repository as cloned into the workdir
func (j *Job) MarkCloned(sourceName string) {
	j.State = JobStateCloned
	j.SourceName = sourceName
	j.UpdatedAt = time.Now()
}

// MarkEnumerated records the number of candidate files found in the clone
func (j *Job) MarkEnumerated(total int) {
	j.State = JobStateEnumerated
	j.FilesEnumerated = total
	j.UpdatedAt = time.Now()
}

// MarkProcessing marks the start of per-file transpilation
func (j *Job) MarkProcessing() {
	j.State = JobStateProcessing
	j.UpdatedAt = time.Now()
}

// MarkAssembled records the per-file outcome counts after assembly
func (j *Job) MarkAssembled(transpiled int) {
	j.State = JobStateAssembled
	j.FilesTranspiled = transpiled
	j.UpdatedAt = time.Now()
}

// MarkPublished records where the reconstructed repository was published
func (j *Job) MarkPublished(location string) {
	j.State = JobStatePublished
	j.NewLocation = location
	j.UpdatedAt = time.Now()
}

// Complete marks the job as done
func (j *Job) Complete() {
	now := time.Now()
	j.State = JobStateDone
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// Fail marks the job as failed with an error message
func (j *Job) Fail(err error) {
	now := time.Now()
	j.State = JobStateFailed
	j.Error = err.Error()
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// StatusReconstructed is the terminal status reported for a successful job.
const StatusReconstructed = "reconstructed"

// Result is the summary returned to callers after a job completes
type Result struct {
	JobID           string   `json:"job_id"`
	Original        string   `json:"original"`
	NewLocation     string   `json:"new_location"`
	Language        string   `json:"language"`
	FilesTranspiled int      `json:"files_transpiled"`
	Modifications   []string `json:"modifications"`
	Status          string   `json:"status"`
}

// ResultFromJob builds the caller-facing summary for a completed job.
// The modification list is copied so the result never aliases job state.
func ResultFromJob(j *Job) *Result {
	return &Result{
		JobID:           j.ID,
		Original:        j.Source,
		NewLocation:     j.NewLocation,
		Language:        j.TargetLanguage,
		FilesTranspiled: j.FilesTranspiled,
		Modifications:   append([]string{}, j.Modifications...),
		Status:          StatusReconstructed,
	}
}

// MarshalModifications converts a modification list to a JSON string for storage
func MarshalModifications(mods []string) (string, error) {
	if len(mods) == 0 {
		return "", nil
	}
	data, err := json.Marshal(mods)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal modifications")
	}
	return string(data), nil
}

// UnmarshalModifications converts a stored JSON string back to a modification list
func UnmarshalModifications(data string) ([]string, error) {
	if data == "" {
		return nil, nil
	}
	var mods []string
	if err := json.Unmarshal([]byte(data), &mods); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal modifications")
	}
	return mods, nil
}
