package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts (-v, -vv, ...).
//
// Verbosity widens WHAT categories of output are shown, not just log
// severity; output.go maps categories to these levels. Typical gate:
//
//	if logger.ShouldOutput(verbosity, logger.OutputRuleMatches) {
//	    fmt.Printf("rule %d rewrote %d sites\n", i, n)
//	}
const (
	VerbosityUser  = 0 // No flags: results, errors, stage transitions
	VerbosityInfo  = 1 // -v: + per-file progress, startup, summaries
	VerbosityDebug = 2 // -vv: + rule matches, timing, config details
	VerbosityTrace = 3 // -vvv: + git operations, SQL, per-file flow
	VerbosityAll   = 4 // -vvvv: + full file contents before/after
)

// VerbosityToLevel maps a verbosity flag count to the zap log level it
// implies: quiet runs warn, -v informs, everything past that debugs.
// Zap has nothing finer than Debug; -vvv and -vvvv widen the output
// categories instead of the level.
func VerbosityToLevel(verbosity int) zapcore.Level {
	if verbosity <= VerbosityUser {
		return zapcore.WarnLevel
	}
	if verbosity == VerbosityInfo {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

// ShouldLogTrace reports whether trace-depth detail (-vvv) is wanted
func ShouldLogTrace(verbosity int) bool {
	return verbosity >= VerbosityTrace
}

// ShouldLogAll reports whether full data dumps (-vvvv) are wanted
func ShouldLogAll(verbosity int) bool {
	return verbosity >= VerbosityAll
}

// levelNames are the display names for each verbosity level
var levelNames = map[int]string{
	VerbosityUser:  "User",
	VerbosityInfo:  "Info (-v)",
	VerbosityDebug: "Debug (-vv)",
	VerbosityTrace: "Trace (-vvv)",
	VerbosityAll:   "All (-vvvv)",
}

// LevelName returns a human-readable name for a verbosity level
func LevelName(verbosity int) string {
	if name, ok := levelNames[verbosity]; ok {
		return name
	}
	if verbosity > VerbosityAll {
		return "All (-vvvv+)"
	}
	return "Unknown"
}
