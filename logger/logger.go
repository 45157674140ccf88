// Package logger owns process-wide structured logging for Strive.
//
// Components take a *zap.SugaredLogger from ComponentLogger rather than
// logging through the global directly; the global exists for wiring
// (db.Open, CLI startup) and for tests.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger, a nop until Initialize runs so
// library callers that never initialize still log safely.
var Logger *zap.SugaredLogger

// JSONOutput tracks whether Initialize selected machine-readable output
var JSONOutput bool

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger at Info level
func Initialize(jsonOutput bool) error {
	return InitializeWithLevel(jsonOutput, zap.InfoLevel)
}

// InitializeWithLevel sets up the global logger with an explicit minimum
// level. The CLI maps -v flag counts to levels via VerbosityToLevel.
func InitializeWithLevel(jsonOutput bool, level zapcore.Level) error {
	JSONOutput = jsonOutput

	if jsonOutput {
		// Machine consumers get zap's production JSON encoding
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		built, err := config.Build()
		if err != nil {
			return err
		}
		Logger = built.Sugar()
		return nil
	}

	// Humans get the calm minimal console encoder
	core := zapcore.NewCore(newMinimalEncoder(), zapcore.AddSync(os.Stdout), level)
	Logger = zap.New(core).Sugar()
	return nil
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		Logger.Sync()
	}
}
