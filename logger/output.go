package logger

// Verbosity-gated output categories.
//
// Log levels filter by severity; categories filter by kind. A category
// names one stream of information (stage transitions, rule matches, git
// traffic) and carries the minimum verbosity that reveals it. Emitters
// and the startup banner consult ShouldOutput instead of hard-coding
// verbosity comparisons, so the terminal stream and the structured logs
// agree about what -v, -vv and friends mean.

// OutputCategory names one stream of verbosity-gated output
type OutputCategory int

const (
	// Always shown
	OutputResults    OutputCategory = iota // transpiled code and command results
	OutputErrors                           // errors with hints and resolution steps
	OutputUserStatus                       // final success or failure line
	OutputStages                           // pipeline stage transitions (cloned, assembled, published)

	// -v
	OutputProgress      // per-file progress as workers finish
	OutputStartup       // startup banner and config summary
	OutputOperationInfo // high-level operation summaries

	// -vv
	OutputSkippedFiles // files passed through without transpilation
	OutputRuleMatches  // rewrite rule hits and indent remapping
	OutputTiming       // operation durations
	OutputConfig       // config values as loaded
	OutputDBStats      // job store statistics

	// -vvv
	OutputGitCalls   // clone and push traffic, remote negotiation
	OutputSQLQueries // individual SQL statements
	OutputFileFlow   // per-file classify/transpile/optimize/modify steps

	// -vvvv
	OutputFileBefore // full file contents before transformation
	OutputFileAfter  // full file contents after transformation
	OutputDataDump   // full data structure dumps
)

// categories is the single registry: each category's display name paired
// with the minimum verbosity that reveals it
var categories = map[OutputCategory]struct {
	name     string
	minLevel int
}{
	OutputResults:    {"results", VerbosityUser},
	OutputErrors:     {"errors", VerbosityUser},
	OutputUserStatus: {"status", VerbosityUser},
	OutputStages:     {"stages", VerbosityUser},

	OutputProgress:      {"progress", VerbosityInfo},
	OutputStartup:       {"startup", VerbosityInfo},
	OutputOperationInfo: {"operation-info", VerbosityInfo},

	OutputSkippedFiles: {"skipped-files", VerbosityDebug},
	OutputRuleMatches:  {"rule-matches", VerbosityDebug},
	OutputTiming:       {"timing", VerbosityDebug},
	OutputConfig:       {"config", VerbosityDebug},
	OutputDBStats:      {"db-stats", VerbosityDebug},

	OutputGitCalls:   {"git", VerbosityTrace},
	OutputSQLQueries: {"sql", VerbosityTrace},
	OutputFileFlow:   {"file-flow", VerbosityTrace},

	OutputFileBefore: {"file-before", VerbosityAll},
	OutputFileAfter:  {"file-after", VerbosityAll},
	OutputDataDump:   {"data-dump", VerbosityAll},
}

// ShouldOutput reports whether category is shown at the given verbosity.
// Categories missing from the registry only surface at full verbosity.
func ShouldOutput(verbosity int, category OutputCategory) bool {
	info, ok := categories[category]
	if !ok {
		return verbosity >= VerbosityAll
	}
	return verbosity >= info.minLevel
}

// CategoryName returns the display name for an output category
func CategoryName(category OutputCategory) string {
	if info, ok := categories[category]; ok {
		return info.name
	}
	return "unknown"
}

// EnabledCategories lists every category visible at the given verbosity
func EnabledCategories(verbosity int) []OutputCategory {
	var enabled []OutputCategory
	for cat, info := range categories {
		if verbosity >= info.minLevel {
			enabled = append(enabled, cat)
		}
	}
	return enabled
}

// levelDescriptions summarize each verbosity level for the banner,
// indexed by level
var levelDescriptions = [...]string{
	VerbosityUser:  "results, errors, and stage transitions",
	VerbosityInfo:  "above + per-file progress and operation summaries",
	VerbosityDebug: "above + skipped files, rule matches, timing, config",
	VerbosityTrace: "above + git operations, SQL, per-file flow",
	VerbosityAll:   "full output including file contents",
}

// VerbosityDescription summarizes what a verbosity level shows
func VerbosityDescription(verbosity int) string {
	if verbosity >= 0 && verbosity < len(levelDescriptions) {
		return levelDescriptions[verbosity]
	}
	if verbosity > VerbosityAll {
		return "maximum verbosity"
	}
	return "unknown verbosity level"
}
