package rules

import (
	_ "embed"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/strive-code/strive/errors"
)

//go:embed ruleset.toml
var rulesetTOML []byte

type ruleManifest struct {
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`
}

type pairManifest struct {
	Source       string         `toml:"source"`
	Target       string         `toml:"target"`
	IndentSource string         `toml:"indent_source"`
	IndentTarget string         `toml:"indent_target"`
	SourceBlocks string         `toml:"source_blocks"`
	TargetBlocks string         `toml:"target_blocks"`
	Rules        []ruleManifest `toml:"rule"`
}

type manifest struct {
	Version string         `toml:"version"`
	Pairs   []pairManifest `toml:"pair"`
}

// Load parses the embedded ruleset manifest into an immutable Table.
// Call it once at process start and pass the result to every component
// that needs rule access.
func Load() (*Table, error) {
	return parse(rulesetTOML)
}

func parse(data []byte) (*Table, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to parse ruleset manifest")
	}

	if _, err := semver.NewVersion(m.Version); err != nil {
		return nil, errors.Wrapf(err, "invalid ruleset version %q", m.Version)
	}

	table := &Table{
		version: m.Version,
		pairs:   make(map[LanguagePair]pairEntry, len(m.Pairs)),
	}

	for _, pm := range m.Pairs {
		if pm.Source == "" || pm.Target == "" {
			return nil, errors.Newf("ruleset pair missing source or target (source=%q, target=%q)", pm.Source, pm.Target)
		}
		pair := LanguagePair{Source: pm.Source, Target: pm.Target}
		if _, exists := table.pairs[pair]; exists {
			return nil, errors.Newf("duplicate ruleset pair %s", pair)
		}

		sourceStyle, err := parseBlockStyle(pm.SourceBlocks)
		if err != nil {
			return nil, errors.Wrapf(err, "pair %s source block style", pair)
		}
		targetStyle, err := parseBlockStyle(pm.TargetBlocks)
		if err != nil {
			return nil, errors.Wrapf(err, "pair %s target block style", pair)
		}
		if sourceStyle == BlocksIndent && pm.IndentSource == "" {
			return nil, errors.Newf("pair %s uses indent blocks but has no indent_source unit", pair)
		}
		if targetStyle == BlocksIndent && pm.IndentTarget == "" {
			return nil, errors.Newf("pair %s uses indent blocks but has no indent_target unit", pair)
		}

		list := make(RuleList, 0, len(pm.Rules))
		for i, rm := range pm.Rules {
			re, err := regexp.Compile(rm.Pattern)
			if err != nil {
				return nil, errors.Wrapf(err, "pair %s rule %d pattern %q", pair, i, rm.Pattern)
			}
			list = append(list, Rule{Pattern: re, Replacement: rm.Replacement})
		}

		table.pairs[pair] = pairEntry{
			rules: list,
			indent: IndentSpec{
				SourceUnit:  pm.IndentSource,
				TargetUnit:  pm.IndentTarget,
				SourceStyle: sourceStyle,
				TargetStyle: targetStyle,
			},
		}
	}

	return table, nil
}

func parseBlockStyle(s string) (BlockStyle, error) {
	switch BlockStyle(s) {
	case BlocksIndent, BlocksBrace:
		return BlockStyle(s), nil
	}
	return "", errors.Newf("unknown block style %q", s)
}
