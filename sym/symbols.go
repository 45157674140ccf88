// Package sym defines canonical symbols for Strive operations and system
// markers. These symbols are stable across CLI output and documentation.
package sym

// Primary operation symbols. Each maps to a CLI command.
const (
	Transpile   = "⇄" // transpile: rewrite source between languages
	Optimize    = "⊖" // optimize: strip redundant code
	Reconstruct = "⟳" // reconstruct: rebuild a repository in another language
	Rules       = "§" // rules: rewrite rule table inspection
	Jobs        = "꩜" // jobs: reconstruction job history
	Config      = "≡" // config: configuration and system settings
)

// System infrastructure symbols.
const (
	DB = "⊔" // database/storage layer
)

// Commands lists the CLI commands that carry a symbol, in display order.
var Commands = []string{"transpile", "optimize", "reconstruct", "rules", "jobs", "config"}

// CommandToSymbol maps CLI command names to their canonical glyph strings.
var CommandToSymbol = map[string]string{
	"transpile":   Transpile,
	"optimize":    Optimize,
	"reconstruct": Reconstruct,
	"rules":       Rules,
	"jobs":        Jobs,
	"config":      Config,
}

// SymbolToCommand maps glyph strings back to their CLI command names.
var SymbolToCommand = map[string]string{
	Transpile:   "transpile",
	Optimize:    "optimize",
	Reconstruct: "reconstruct",
	Rules:       "rules",
	Jobs:        "jobs",
	Config:      "config",
}

// CommandDescriptions provides human-readable explanations for help output.
var CommandDescriptions = map[string]string{
	"transpile":   "Transpile: rewrite source between languages",
	"optimize":    "Optimize: strip redundant code",
	"reconstruct": "Reconstruct: rebuild a repository in another language",
	"rules":       "Rules: inspect the rewrite rule table",
	"jobs":        "Jobs: reconstruction job history",
	"config":      "Config: configuration and system settings",
}
