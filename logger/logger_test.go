package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		wantErr    bool
	}{
		{
			name:       "JSON output mode",
			jsonOutput: true,
			wantErr:    false,
		},
		{
			name:       "Console output mode",
			jsonOutput: false,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset global logger
			Logger = nil
			JSONOutput = false

			err := Initialize(tt.jsonOutput)
			if (err != nil) != tt.wantErr {
				t.Errorf("Initialize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if Logger == nil {
					t.Error("Initialize() did not set global Logger")
				}
				if JSONOutput != tt.jsonOutput {
					t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
				}
			}

			// Cleanup
			if Logger != nil {
				Logger.Sync()
				Logger = nil
			}
		})
	}
}

func TestPreInitLoggingIsSafe(t *testing.T) {
	// Before Initialize the global is the package-load nop; logging
	// through it must not panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("pre-init logging panicked: %v", r)
		}
		Initialize(false)
	}()

	Logger = zap.NewNop().Sugar()
	Logger.Infow("pre-init message", "k", "v")
	Logger.Debugf("pre-init %d", 1)
	Cleanup()
}

func TestInitializeWithLevel(t *testing.T) {
	if err := InitializeWithLevel(false, zapcore.DebugLevel); err != nil {
		t.Fatalf("InitializeWithLevel: %v", err)
	}
	if Logger == nil {
		t.Fatal("global Logger not set")
	}
	if JSONOutput {
		t.Error("console mode should leave JSONOutput false")
	}
	if !Logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level requested but not enabled")
	}
	Cleanup()
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{3, zapcore.DebugLevel},
		{4, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		if got := VerbosityToLevel(tt.verbosity); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestShouldOutput(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		category  OutputCategory
		want      bool
	}{
		{"errors always shown", 0, OutputErrors, true},
		{"stages always shown", 0, OutputStages, true},
		{"progress hidden by default", 0, OutputProgress, false},
		{"progress at -v", 1, OutputProgress, true},
		{"skipped files hidden at -v", 1, OutputSkippedFiles, false},
		{"skipped files at -vv", 2, OutputSkippedFiles, true},
		{"rule matches hidden at -v", 1, OutputRuleMatches, false},
		{"rule matches at -vv", 2, OutputRuleMatches, true},
		{"git calls at -vvv", 3, OutputGitCalls, true},
		{"file contents only at -vvvv", 3, OutputFileBefore, false},
		{"file contents at -vvvv", 4, OutputFileBefore, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldOutput(tt.verbosity, tt.category); got != tt.want {
				t.Errorf("ShouldOutput(%d, %s) = %v, want %v",
					tt.verbosity, CategoryName(tt.category), got, tt.want)
			}
		})
	}
}

func TestFieldsFromContext(t *testing.T) {
	if err := Initialize(false); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	ctx := context.Background()
	if fields := FieldsFromContext(ctx); len(fields) != 0 {
		t.Errorf("empty context produced fields: %v", fields)
	}

	ctx = WithJobID(ctx, "JB3f")
	ctx = WithComponent(ctx, "pipeline")

	fields := FieldsFromContext(ctx)
	if len(fields) != 4 {
		t.Fatalf("expected 4 field elements, got %d: %v", len(fields), fields)
	}
	if fields[0] != FieldJobID || fields[1] != "JB3f" {
		t.Errorf("job id not first: %v", fields)
	}
	if fields[2] != FieldComponent || fields[3] != "pipeline" {
		t.Errorf("component not second: %v", fields)
	}
}

func TestComponentLogger(t *testing.T) {
	if err := Initialize(true); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	l := ComponentLogger("pipeline.runner")
	if l == nil {
		t.Fatal("ComponentLogger returned nil")
	}
	// Named loggers must be independent of the global
	if l == Logger {
		t.Error("ComponentLogger returned the global logger unchanged")
	}
}

func TestChildLogger(t *testing.T) {
	if err := Initialize(true); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	child := ChildLogger(Logger, FieldJobID, "JB3f")
	if child == nil {
		t.Fatal("ChildLogger returned nil")
	}
}
