// Package optimize implements the cleanup pass applied to transpiled
// text: unused top-level import pruning and redundant placeholder
// removal for Python, var-to-let rewriting for JavaScript. Both passes
// are idempotent, so re-running them reports no further changes.
package optimize

import (
	"regexp"
	"strings"
)

// Result carries the optimized text and a description of every change
// the pass made.
type Result struct {
	Code         string
	Original     string
	Improvements []string
	Savings      int
	Language     string
}

// Optimize runs the language-appropriate cleanup over code. Languages
// without a cleanup pass return the text unchanged.
func Optimize(code, language string) Result {
	lang := strings.ToLower(language)
	optimized := code
	var improvements []string

	switch lang {
	case "python":
		optimized, improvements = optimizePython(code)
	case "javascript":
		optimized, improvements = optimizeJS(code)
	}

	return Result{
		Code:         optimized,
		Original:     code,
		Improvements: improvements,
		Savings:      len(code) - len(optimized),
		Language:     lang,
	}
}

var identifierPattern = regexp.MustCompile(`\b[a-zA-Z_]\w*\b`)

// importAllowlist names modules kept regardless of visible usage.
var importAllowlist = map[string]bool{
	"os":   true,
	"sys":  true,
	"json": true,
	"math": true,
}

// optimizePython prunes unused top-level imports, then removes pass
// statements that provably share their block with a real statement.
// The placeholder sweep runs over the already-pruned lines so a pass
// left alone by pruning is never orphaned.
func optimizePython(code string) (string, []string) {
	lines := strings.Split(code, "\n")
	used := usedIdentifiers(lines)

	var improvements []string
	pruned := make([]string, 0, len(lines))
	for _, line := range lines {
		if isTopLevelImport(line) && !importIsUsed(line, used) {
			improvements = append(improvements, "Removed unused import: "+strings.TrimSpace(line))
			continue
		}
		pruned = append(pruned, line)
	}

	final := make([]string, 0, len(pruned))
	for i, line := range pruned {
		if strings.TrimSpace(line) == "pass" && hasSiblingStatement(pruned, i) {
			improvements = append(improvements, "Removed unnecessary pass")
			continue
		}
		final = append(final, line)
	}

	return strings.Join(final, "\n"), improvements
}

// usedIdentifiers collects identifier tokens from every non-import
// line. Comments count: a name mentioned anywhere keeps its import.
func usedIdentifiers(lines []string) map[string]bool {
	used := make(map[string]bool)
	for _, line := range lines {
		if isImportLine(line) {
			continue
		}
		for _, tok := range identifierPattern.FindAllString(line, -1) {
			used[tok] = true
		}
	}
	return used
}

func isImportLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "import ") || strings.HasPrefix(t, "from ")
}

// isTopLevelImport matches imports at column zero. Indented imports are
// scoped to their block and never pruned.
func isTopLevelImport(line string) bool {
	return strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "from ")
}

func importIsUsed(line string, used map[string]bool) bool {
	names := importBindings(line)
	if len(names) == 0 {
		// Malformed import line; cannot prove it unused.
		return true
	}
	for _, name := range names {
		if name == "*" || importAllowlist[name] || used[name] {
			return true
		}
	}
	return false
}

// importBindings returns the names an import line binds, plus the root
// module for from-imports. Including the module root is deliberately
// conservative: a false negative keeps a dead import, a false positive
// would break working code.
func importBindings(line string) []string {
	t := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(t, "from "):
		rest := strings.TrimPrefix(t, "from ")
		parts := strings.SplitN(rest, " import ", 2)
		names := []string{rootSegment(strings.TrimSpace(parts[0]))}
		if len(parts) == 2 {
			names = append(names, parseImportList(parts[1])...)
		}
		return names
	case strings.HasPrefix(t, "import "):
		return parseImportList(strings.TrimPrefix(t, "import "))
	}
	return nil
}

// parseImportList parses a clause like "a.b as c, d" into bound names.
func parseImportList(list string) []string {
	var names []string
	for _, item := range strings.Split(list, ",") {
		fields := strings.Fields(item)
		if len(fields) == 0 {
			continue
		}
		name := rootSegment(fields[0])
		if len(fields) == 3 && fields[1] == "as" {
			name = fields[2]
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func rootSegment(module string) string {
	if i := strings.Index(module, "."); i >= 0 {
		return module[:i]
	}
	return module
}

// hasSiblingStatement reports whether the pass line at index i shares
// its block with at least one real statement. Comments and blanks do
// not count, and neither do other pass lines, since every removable
// pass goes in the same sweep.
func hasSiblingStatement(lines []string, i int) bool {
	depth := indentWidth(lines[i])
	for j := i - 1; j >= 0; j-- {
		counts, boundary := siblingAt(lines[j], depth)
		if boundary {
			break
		}
		if counts {
			return true
		}
	}
	for j := i + 1; j < len(lines); j++ {
		counts, boundary := siblingAt(lines[j], depth)
		if boundary {
			break
		}
		if counts {
			return true
		}
	}
	return false
}

// siblingAt classifies one line relative to a pass statement at depth.
// A shallower line ends the block scan in that direction.
func siblingAt(line string, depth int) (counts, boundary bool) {
	t := strings.TrimSpace(line)
	if t == "" || strings.HasPrefix(t, "#") {
		return false, false
	}
	if indentWidth(line) < depth {
		return false, true
	}
	return t != "pass", false
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

var varDecl = regexp.MustCompile(`\bvar `)

// optimizeJS rewrites var declarations to let, recording the change
// only when something actually changed.
func optimizeJS(code string) (string, []string) {
	if !varDecl.MatchString(code) {
		return code, nil
	}
	return varDecl.ReplaceAllString(code, "let "), []string{"Replaced var with let"}
}
