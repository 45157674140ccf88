// Package errors is Strive's error handling layer, a curated facade
// over github.com/cockroachdb/errors plus the sentinel errors of the
// transpilation and reconstruction domain.
//
// The facade re-exports only the parts of cockroachdb/errors the
// codebase uses: creation, wrapping, inspection, stack traces, and
// user-facing hints. Constructors below attach hints where a failure
// has a known resolution step; the CLI prints them under the error.
//
//	if err := table.Lookup(pair); err != nil {
//	    return errors.Wrap(err, "transpile request")
//	}
//
// Sentinels partition failures by blast radius: clone and publish
// errors kill the whole reconstruction job, file errors only mark one
// file as failed. Check with errors.IsFatal or the Is* helpers.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation, wrapping, and inspection
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Stack traces and assertions
var (
	WithStack        = crdb.WithStack
	AssertionFailedf = crdb.AssertionFailedf
)

// Hints carry user-facing resolution steps alongside an error without
// polluting its message. The CLI flattens and prints them on failure.
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	GetAllHints = crdb.GetAllHints
)

// Sentinels for the transpilation engine and reconstruction pipeline.
// Constructors below mark concrete failures with these so callers can
// branch on kind while the original cause stays in the chain.
var (
	// ErrUnsupportedPair: no rule table for the requested language pair.
	// Surfaced to the caller, never retried.
	ErrUnsupportedPair = New("unsupported language pair")

	// ErrClone: the source repository could not be fetched. Job-fatal.
	ErrClone = New("clone failed")

	// ErrPublish: the rebuilt repository could not be pushed. Job-fatal.
	ErrPublish = New("publish failed")

	// ErrFileRead: one file could not be read. The job continues.
	ErrFileRead = New("file read failed")

	// ErrFileTranspile: one file failed during transform. The job continues.
	ErrFileTranspile = New("file transpile failed")

	// ErrInvalidRequest: the request was malformed or names something
	// the engine cannot do.
	ErrInvalidRequest = New("invalid request")
)

func isSentinel(err, sentinel error) bool {
	return err != nil && Is(err, sentinel)
}

// IsUnsupportedPairError reports whether err is or wraps ErrUnsupportedPair
func IsUnsupportedPairError(err error) bool {
	return isSentinel(err, ErrUnsupportedPair)
}

// IsCloneError reports whether err is or wraps ErrClone
func IsCloneError(err error) bool {
	return isSentinel(err, ErrClone)
}

// IsPublishError reports whether err is or wraps ErrPublish
func IsPublishError(err error) bool {
	return isSentinel(err, ErrPublish)
}

// IsInvalidRequestError reports whether err is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return isSentinel(err, ErrInvalidRequest)
}

// IsFatal reports whether err should terminate the whole reconstruction
// job rather than a single file.
func IsFatal(err error) bool {
	return err != nil && IsAny(err, ErrClone, ErrPublish)
}

// NewUnsupportedPairError names the pair in the message and carries the
// languages as safe details so logs can report them without parsing.
func NewUnsupportedPairError(source, target string) error {
	err := Wrapf(ErrUnsupportedPair, "%s -> %s", source, target)
	err = crdb.WithSafeDetails(err, "source=%s target=%s", crdb.Safe(source), crdb.Safe(target))
	return WithHint(err, "run 'strive rules' to list supported language pairs")
}

// NewCloneError marks a fetch failure as job-fatal, keeping the
// underlying cause in the chain.
func NewCloneError(err error, location string) error {
	marked := Wrapf(crdb.Mark(err, ErrClone), "clone %s", location)
	return WithHint(marked, "check the source location and your network access")
}

// NewPublishError marks a push failure as job-fatal.
func NewPublishError(err error, location string) error {
	marked := Wrapf(crdb.Mark(err, ErrPublish), "publish to %s", location)
	return WithHint(marked, "verify the publish target and your push credentials")
}

// NewFileReadError marks a read failure as file-local.
func NewFileReadError(err error, path string) error {
	return Wrapf(crdb.Mark(err, ErrFileRead), "read %s", path)
}

// NewFileTranspileError marks a transform failure as file-local.
func NewFileTranspileError(err error, path string) error {
	return Wrapf(crdb.Mark(err, ErrFileTranspile), "transpile %s", path)
}

// NewInvalidRequestError builds an invalid-request error with a
// formatted description of what was wrong.
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidRequest, format, args...)
}
