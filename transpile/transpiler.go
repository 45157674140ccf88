// Package transpile implements the block transpiler: ordered rewrite
// rules applied across a unit of source text, followed by structural
// remapping between indentation-delimited and brace-delimited blocks.
package transpile

import (
	"strings"

	"go.uber.org/zap"

	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/logger"
	"github.com/strive-code/strive/rules"
)

// StatusTranspiled is the terminal status of a successful transpile.
// A unit with no recognized construct still reaches this status: it
// passes through with only its indentation remapped.
const StatusTranspiled = "transpiled"

// Unit is one piece of source text plus its declared languages.
type Unit struct {
	Text string
	From string
	To   string
}

// Result carries the transformed text for one unit.
type Result struct {
	Text   string
	Pair   rules.LanguagePair
	Status string
}

// Transpiler applies a rule table to units of source text. It holds no
// per-unit state and the table is read-only, so a single Transpiler is
// safe for concurrent use across files and jobs.
type Transpiler struct {
	table *rules.Table
	log   *zap.SugaredLogger
}

// New returns a Transpiler backed by table.
func New(table *rules.Table) *Transpiler {
	return &Transpiler{
		table: table,
		log:   logger.ComponentLogger("transpile"),
	}
}

// Transpile rewrites unit.Text from unit.From to unit.To.
//
// Rules are applied in table order to the whole accumulated text, each
// rule exactly once with global substitution. Structural remapping then
// converts block delimiters: indentation depth becomes braces or braces
// become indentation depth, per the pair's indent spec. Mixed tab/space
// indentation is out of contract; depth is computed from leading spaces
// only.
func (t *Transpiler) Transpile(unit Unit) (Result, error) {
	pair := rules.LanguagePair{Source: unit.From, Target: unit.To}

	list, err := t.table.Lookup(pair)
	if err != nil {
		return Result{}, err
	}
	spec, err := t.table.IndentFor(pair)
	if err != nil {
		return Result{}, err
	}

	// Brace depths must be read off the source text before the rules
	// strip opening braces from converted lines. Rules never add or
	// remove lines, so the per-line depths stay aligned.
	var depths []int
	var closerOnly []bool
	if spec.SourceStyle == rules.BlocksBrace && spec.TargetStyle == rules.BlocksIndent {
		depths, closerOnly = braceDepths(unit.Text)
	}

	text := list.Apply(unit.Text)

	switch {
	case spec.SourceStyle == rules.BlocksIndent && spec.TargetStyle == rules.BlocksBrace:
		text = t.indentToBrace(text, spec)
	case spec.SourceStyle == rules.BlocksBrace && spec.TargetStyle == rules.BlocksIndent:
		text, err = reindentFromDepths(text, depths, closerOnly, spec)
		if err != nil {
			return Result{}, err
		}
	}

	t.log.Debugw("transpiled unit",
		logger.FieldSource, unit.From,
		logger.FieldTarget, unit.To,
		logger.FieldSize, len(unit.Text),
	)

	return Result{Text: text, Pair: pair, Status: StatusTranspiled}, nil
}

// indentToBrace rewrites indentation depth into the target unit and
// synthesizes closing braces. A closer is emitted for every level the
// depth drops between consecutive non-blank lines, except at the level
// of a line that already begins with a closer (an else/elif line carries
// its own). Residual closers drain at end of text.
func (t *Transpiler) indentToBrace(text string, spec rules.IndentSpec) string {
	trailingNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if trailingNewline {
		lines = lines[:len(lines)-1]
	}

	out := make([]string, 0, len(lines)+2)
	prev := 0
	unit := len(spec.SourceUnit)
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if strings.TrimSpace(trimmed) == "" {
			out = append(out, line)
			continue
		}
		lead := len(line) - len(trimmed)
		depth := lead / unit
		if lead%unit != 0 {
			// Degenerate input: not a whole multiple of the source
			// unit. Flag it and pass the line through unchanged.
			t.log.Warnw("indentation is not a whole multiple of the source unit",
				logger.FieldLine, i+1,
				"width", lead,
				"unit", unit,
			)
			out = append(out, line)
			prev = depth
			continue
		}
		if depth < prev {
			for d := prev - 1; d >= depth; d-- {
				if d == depth && strings.HasPrefix(trimmed, "}") {
					break
				}
				out = append(out, strings.Repeat(spec.TargetUnit, d)+"}")
			}
		}
		out = append(out, strings.Repeat(spec.TargetUnit, depth)+trimmed)
		prev = depth
	}
	for d := prev - 1; d >= 0; d-- {
		out = append(out, strings.Repeat(spec.TargetUnit, d)+"}")
	}

	joined := strings.Join(out, "\n")
	if trailingNewline {
		joined += "\n"
	}
	return joined
}

// braceDepths walks brace-delimited source text and computes each
// line's block depth. Closing braces at the start of a line lower that
// line's own depth; everything else takes effect from the next line.
// Lines consisting of a single closer are marked for consumption, since
// the target language expresses the close purely through indentation.
func braceDepths(text string) ([]int, []bool) {
	lines := strings.Split(text, "\n")
	depths := make([]int, len(lines))
	closerOnly := make([]bool, len(lines))
	depth := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		d := depth - leadingClosers(trimmed)
		if d < 0 {
			d = 0
		}
		depths[i] = d
		closerOnly[i] = trimmed == "}"
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			depth = 0
		}
	}
	return depths, closerOnly
}

// leadingClosers counts closing braces at the start of a trimmed line,
// allowing whitespace between them.
func leadingClosers(s string) int {
	n := 0
	for _, r := range s {
		switch r {
		case '}':
			n++
		case ' ', '\t':
		default:
			return n
		}
	}
	return n
}

// reindentFromDepths re-emits rule-transformed lines at the depths
// recorded from the brace structure of the source, consuming lines that
// were nothing but a closer.
func reindentFromDepths(text string, depths []int, closerOnly []bool, spec rules.IndentSpec) (string, error) {
	lines := strings.Split(text, "\n")
	if len(lines) != len(depths) {
		return "", errors.AssertionFailedf("rule application changed the line count (%d -> %d)", len(depths), len(lines))
	}
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if closerOnly[i] {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, "")
			continue
		}
		out = append(out, strings.Repeat(spec.TargetUnit, depths[i])+trimmed)
	}
	return strings.Join(out, "\n"), nil
}
