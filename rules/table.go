// Package rules holds the ordered rewrite-rule tables driving symbolic
// transpilation. The table is loaded once at process start from an
// embedded, versioned manifest and is read-only afterwards, so it can be
// shared across concurrent jobs without locking.
package rules

import (
	"regexp"
	"sort"

	"github.com/strive-code/strive/errors"
)

// BlockStyle describes how a language delimits blocks: by indentation
// depth or by explicit brace tokens.
type BlockStyle string

const (
	BlocksIndent BlockStyle = "indent"
	BlocksBrace  BlockStyle = "brace"
)

// LanguagePair identifies an ordered source/target language combination.
// It is the identity key into the rule table.
type LanguagePair struct {
	Source string
	Target string
}

func (p LanguagePair) String() string {
	return p.Source + "->" + p.Target
}

// Rule is a single pattern/replacement rewrite scoped to one pair.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply performs global substitution of the rule across text. A rule
// that matches nothing is a no-op.
func (r Rule) Apply(text string) string {
	return r.Pattern.ReplaceAllString(text, r.Replacement)
}

// RuleList is an ordered list of rules. Order is significant: each rule
// sees the output of the previous one and is applied exactly once.
type RuleList []Rule

// Apply runs every rule in list order over text.
func (l RuleList) Apply(text string) string {
	for _, r := range l {
		text = r.Apply(text)
	}
	return text
}

// IndentSpec carries the literal indentation units and block styles for
// one language pair. Units convert indentation depth, not raw
// whitespace: a line at depth N in the source is emitted at depth N in
// the target using the target unit.
type IndentSpec struct {
	SourceUnit  string
	TargetUnit  string
	SourceStyle BlockStyle
	TargetStyle BlockStyle
}

type pairEntry struct {
	rules  RuleList
	indent IndentSpec
}

// Table maps language pairs to their ordered rule lists and indentation
// specs. Construct via Load; never mutate after construction.
type Table struct {
	version string
	pairs   map[LanguagePair]pairEntry
}

// Version reports the manifest version of the loaded ruleset.
func (t *Table) Version() string {
	return t.version
}

// Lookup returns the ordered rule list for pair. Looking up the same
// pair twice yields byte-identical rule ordering.
func (t *Table) Lookup(pair LanguagePair) (RuleList, error) {
	entry, ok := t.pairs[pair]
	if !ok {
		return nil, errors.NewUnsupportedPairError(pair.Source, pair.Target)
	}
	return entry.rules, nil
}

// IndentFor returns the indentation mapping for pair.
func (t *Table) IndentFor(pair LanguagePair) (IndentSpec, error) {
	entry, ok := t.pairs[pair]
	if !ok {
		return IndentSpec{}, errors.NewUnsupportedPairError(pair.Source, pair.Target)
	}
	return entry.indent, nil
}

// Supports reports whether a rule list exists for pair.
func (t *Table) Supports(pair LanguagePair) bool {
	_, ok := t.pairs[pair]
	return ok
}

// Pairs returns every supported pair, sorted by source then target.
func (t *Table) Pairs() []LanguagePair {
	pairs := make([]LanguagePair, 0, len(t.pairs))
	for p := range t.pairs {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Source != pairs[j].Source {
			return pairs[i].Source < pairs[j].Source
		}
		return pairs[i].Target < pairs[j].Target
	})
	return pairs
}

// Languages returns the sorted set of languages appearing in any pair.
func (t *Table) Languages() []string {
	seen := make(map[string]bool)
	for p := range t.pairs {
		seen[p.Source] = true
		seen[p.Target] = true
	}
	langs := make([]string, 0, len(seen))
	for l := range seen {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}
