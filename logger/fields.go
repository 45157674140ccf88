package logger

import (
	"context"

	"go.uber.org/zap"
)

// Canonical field names for structured logging. Always prefer these
// constants over raw strings so log consumers can rely on stable keys.
const (
	// Identity
	FieldJobID     = "job_id"
	FieldComponent = "component"

	// Pipeline flow
	FieldStage    = "stage"
	FieldState    = "state"
	FieldLocation = "location"

	// Transpilation
	FieldLanguage = "language"
	FieldSource   = "source"
	FieldTarget   = "target"

	// Files
	FieldFile = "file"
	FieldPath = "path"
	FieldLine = "line"
	FieldSize = "size"

	// Counts and timing
	FieldTotalCount = "total_count"
	FieldTranspiled = "transpiled"
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"
)

// Context keys for values that ride along with a job's context
type contextKey string

const (
	jobIDKey     contextKey = "logger_job_id"
	componentKey contextKey = "logger_component"
)

// contextFields maps context keys to their log field names, in the
// order FieldsFromContext emits them
var contextFields = []struct {
	key   contextKey
	field string
}{
	{jobIDKey, FieldJobID},
	{componentKey, FieldComponent},
}

// WithJobID tags the context with a job ID for downstream logging
func WithJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, jobIDKey, jobID)
}

// WithComponent tags the context with a component name for downstream logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts the logging key-value pairs carried by ctx,
// ready to append to Infow/Warnw/Errorw argument lists.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}
	for _, cf := range contextFields {
		if val, ok := ctx.Value(cf.key).(string); ok && val != "" {
			fields = append(fields, cf.field, val)
		}
	}
	return fields
}

// ComponentLogger returns a named child of the global logger. Components
// take one at construction instead of logging through the global:
//
//	func NewRunner() *Runner {
//	    return &Runner{log: logger.ComponentLogger("pipeline")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger derives a logger carrying extra context fields, for
// sub-operations scoped to one job or file:
//
//	jobLog := logger.ChildLogger(r.log, logger.FieldJobID, job.ID)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
