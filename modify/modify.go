// Package modify applies keyword-triggered textual patches to already
// transpiled text. The trigger table is fixed configuration loaded once
// at startup; keywords outside it are best-effort annotation and fall
// through silently.
package modify

import (
	_ "embed"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/strive-code/strive/errors"
)

//go:embed triggers.toml
var triggersTOML []byte

// Trigger pairs a keyword fragment with the patch text it appends.
type Trigger struct {
	Keyword string `toml:"keyword"`
	Patch   string `toml:"patch"`
}

type triggerManifest struct {
	Triggers []Trigger `toml:"trigger"`
}

// Injector applies the trigger table to text. Read-only after Load and
// safe to share across concurrent jobs.
type Injector struct {
	triggers []Trigger
}

// Load parses the embedded trigger table.
func Load() (*Injector, error) {
	var m triggerManifest
	if err := toml.Unmarshal(triggersTOML, &m); err != nil {
		return nil, errors.Wrap(err, "failed to parse trigger table")
	}
	for i, tr := range m.Triggers {
		if tr.Keyword == "" {
			return nil, errors.Newf("trigger %d has an empty keyword", i)
		}
	}
	return &Injector{triggers: m.Triggers}, nil
}

// Triggers returns the trigger table in declaration order.
func (in *Injector) Triggers() []Trigger {
	out := make([]Trigger, len(in.triggers))
	copy(out, in.triggers)
	return out
}

// Apply appends the patch of every trigger whose keyword occurs
// case-insensitively inside a requested modification. Modifications
// apply in caller order, each trigger appends at most once per call,
// and unknown keywords are a no-op rather than an error.
func (in *Injector) Apply(text string, modifications []string) string {
	applied := make(map[string]bool, len(in.triggers))
	for _, mod := range modifications {
		lowered := strings.ToLower(mod)
		for _, tr := range in.triggers {
			if applied[tr.Keyword] {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(tr.Keyword)) {
				text += tr.Patch
				applied[tr.Keyword] = true
			}
		}
	}
	return text
}
