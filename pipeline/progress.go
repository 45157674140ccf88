package pipeline

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"github.com/strive-code/strive/logger"
)

// Emitter receives progress events while a reconstruction job runs.
//
// Implementations include:
// - CLIEmitter: Pretty-printed terminal output using pterm
// - JSONEmitter: Structured JSON events for machine consumption
// - NopEmitter: Discards everything, for library callers and tests
type Emitter interface {
	// EmitStage announces a pipeline stage transition
	EmitStage(stage string, message string)

	// EmitFile reports the outcome of one processed file
	EmitFile(record FileRecord)

	// EmitComplete reports the final job summary
	EmitComplete(summary map[string]interface{})

	// EmitError reports a stage-level failure
	EmitError(stage string, err error)

	// EmitInfo reports an informational message
	EmitInfo(message string)
}

// ProgressEvent represents a structured JSON progress event
type ProgressEvent struct {
	Type      string                 `json:"type"`      // "stage", "file", "complete", "error", "info"
	Timestamp time.Time              `json:"timestamp"` // When this event occurred
	Data      map[string]interface{} `json:"data"`      // Event-specific data
}

// CLIEmitter outputs pretty-printed progress to terminal using pterm.
// What gets shown is decided by the logger output categories, so the
// terminal stream and the structured logs agree on verbosity semantics.
type CLIEmitter struct {
	verbosity int
}

// NewCLIEmitter creates a CLI progress emitter for terminal output
func NewCLIEmitter(verbosity int) *CLIEmitter {
	return &CLIEmitter{verbosity: verbosity}
}

// EmitStage prints a stage announcement to terminal
func (e *CLIEmitter) EmitStage(stage string, message string) {
	if logger.ShouldOutput(e.verbosity, logger.OutputStages) {
		pterm.Printf("🔄 %s: %s\n", pterm.LightCyan(stage), message)
	}
}

// EmitFile prints a per-file outcome
func (e *CLIEmitter) EmitFile(record FileRecord) {
	switch record.Status {
	case FileStatusTranspiled:
		if logger.ShouldOutput(e.verbosity, logger.OutputProgress) {
			pterm.Printf("✅ %s → %s\n", record.Path, pterm.Green(record.OutputPath))
		}
	case FileStatusSkipped:
		if logger.ShouldOutput(e.verbosity, logger.OutputSkippedFiles) {
			pterm.Printf("   %s\n", pterm.Gray("skipped "+record.Path))
		}
	case FileStatusFailed:
		if logger.ShouldOutput(e.verbosity, logger.OutputErrors) {
			pterm.Warning.Printf("Failed %s: %s\n", record.Path, record.Error)
		}
	}
}

// EmitComplete prints completion summary
func (e *CLIEmitter) EmitComplete(summary map[string]interface{}) {
	if logger.ShouldOutput(e.verbosity, logger.OutputUserStatus) {
		pterm.Success.Println("Reconstruction complete!")
	}
	if logger.ShouldOutput(e.verbosity, logger.OutputOperationInfo) {
		for key, value := range summary {
			pterm.Printf("  %s: %v\n", key, value)
		}
	}
}

// EmitError prints an error
func (e *CLIEmitter) EmitError(stage string, err error) {
	if logger.ShouldOutput(e.verbosity, logger.OutputErrors) {
		pterm.Error.Printf("Error in %s: %v\n", stage, err)
	}
}

// EmitInfo prints informational message
func (e *CLIEmitter) EmitInfo(message string) {
	if logger.ShouldOutput(e.verbosity, logger.OutputOperationInfo) {
		pterm.Info.Println(message)
	}
}

// JSONEmitter outputs structured JSON events to stdout. File events
// arrive from concurrent workers, so encoding is serialized.
type JSONEmitter struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

// NewJSONEmitter creates a JSON progress emitter for structured output
func NewJSONEmitter() *JSONEmitter {
	return &JSONEmitter{
		encoder: json.NewEncoder(os.Stdout),
	}
}

func (e *JSONEmitter) emit(event ProgressEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.encoder.Encode(event)
}

// EmitStage emits a stage event as JSON
func (e *JSONEmitter) EmitStage(stage string, message string) {
	e.emit(ProgressEvent{
		Type:      "stage",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"stage":   stage,
			"message": message,
		},
	})
}

// EmitFile emits a per-file outcome event as JSON
func (e *JSONEmitter) EmitFile(record FileRecord) {
	data := map[string]interface{}{
		"path":   record.Path,
		"status": record.Status,
	}
	if record.OutputPath != "" {
		data["output_path"] = record.OutputPath
	}
	if record.Language != "" {
		data["language"] = record.Language
	}
	if record.Error != "" {
		data["error"] = record.Error
	}
	e.emit(ProgressEvent{
		Type:      "file",
		Timestamp: time.Now(),
		Data:      data,
	})
}

// EmitComplete emits a completion event as JSON
func (e *JSONEmitter) EmitComplete(summary map[string]interface{}) {
	e.emit(ProgressEvent{
		Type:      "complete",
		Timestamp: time.Now(),
		Data:      summary,
	})
}

// EmitError emits an error event as JSON
func (e *JSONEmitter) EmitError(stage string, err error) {
	e.emit(ProgressEvent{
		Type:      "error",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"stage": stage,
			"error": err.Error(),
		},
	})
}

// EmitInfo emits an info event as JSON
func (e *JSONEmitter) EmitInfo(message string) {
	e.emit(ProgressEvent{
		Type:      "info",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": message,
		},
	})
}

// NopEmitter discards all progress events
type NopEmitter struct{}

// NewNopEmitter creates an emitter that discards everything
func NewNopEmitter() *NopEmitter {
	return &NopEmitter{}
}

func (e *NopEmitter) EmitStage(stage string, message string)      {}
func (e *NopEmitter) EmitFile(record FileRecord)                  {}
func (e *NopEmitter) EmitComplete(summary map[string]interface{}) {}
func (e *NopEmitter) EmitError(stage string, err error)           {}
func (e *NopEmitter) EmitInfo(message string)                     {}
