package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strive-code/strive/errors"
)

func TestLoad(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", table.Version())

	assert.True(t, table.Supports(LanguagePair{Source: "python", Target: "javascript"}))
	assert.True(t, table.Supports(LanguagePair{Source: "javascript", Target: "python"}))
	assert.False(t, table.Supports(LanguagePair{Source: "rust", Target: "go"}))
}

func TestLookupUnsupportedPair(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	_, err = table.Lookup(LanguagePair{Source: "rust", Target: "go"})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedPairError(err))
	assert.Contains(t, err.Error(), "rust")
	assert.Contains(t, err.Error(), "go")

	_, err = table.IndentFor(LanguagePair{Source: "rust", Target: "go"})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedPairError(err))
}

func TestLookupOrderStable(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	pair := LanguagePair{Source: "python", Target: "javascript"}
	first, err := table.Lookup(pair)
	require.NoError(t, err)
	second, err := table.Lookup(pair)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	require.NotEmpty(t, first)
	for i := range first {
		assert.Equal(t, first[i].Pattern.String(), second[i].Pattern.String())
		assert.Equal(t, first[i].Replacement, second[i].Replacement)
	}
}

func TestRuleListApply(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	list, err := table.Lookup(LanguagePair{Source: "python", Target: "javascript"})
	require.NoError(t, err)

	assert.Equal(t, "console.log(1)", list.Apply("print(1)"))

	// Interpolation holes come out as template-literal syntax.
	assert.Equal(t,
		"console.log(`Hello, ${name}!`)",
		list.Apply(`print(f"Hello, {name}!")`))

	// A rule that matches nothing is a no-op.
	assert.Equal(t, "// untouched", list.Apply("// untouched"))
}

func TestRuleListApplyInverse(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	list, err := table.Lookup(LanguagePair{Source: "javascript", Target: "python"})
	require.NoError(t, err)

	got := list.Apply("console.log(`Hello, ${name}!`);")
	assert.Contains(t, got, "print(f'Hello, {name}!')")

	assert.Equal(t, "x = 1", list.Apply("let x = 1;"))
	assert.Equal(t, "return True", list.Apply("return true;"))
}

func TestPairsSorted(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	pairs := table.Pairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, LanguagePair{Source: "javascript", Target: "python"}, pairs[0])
	assert.Equal(t, LanguagePair{Source: "python", Target: "javascript"}, pairs[1])
}

func TestLanguages(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"javascript", "python"}, table.Languages())
}

func TestIndentFor(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	spec, err := table.IndentFor(LanguagePair{Source: "python", Target: "javascript"})
	require.NoError(t, err)
	assert.Equal(t, "    ", spec.SourceUnit)
	assert.Equal(t, "  ", spec.TargetUnit)
	assert.Equal(t, BlocksIndent, spec.SourceStyle)
	assert.Equal(t, BlocksBrace, spec.TargetStyle)

	inverse, err := table.IndentFor(LanguagePair{Source: "javascript", Target: "python"})
	require.NoError(t, err)
	assert.Equal(t, "  ", inverse.SourceUnit)
	assert.Equal(t, "    ", inverse.TargetUnit)
	assert.Equal(t, BlocksBrace, inverse.SourceStyle)
	assert.Equal(t, BlocksIndent, inverse.TargetStyle)
}

func TestParseRejectsBadManifests(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{
			name: "malformed toml",
			toml: `version = `,
		},
		{
			name: "invalid version",
			toml: `version = "not-a-version"`,
		},
		{
			name: "missing source",
			toml: `
version = "1.0.0"
[[pair]]
target = "python"
source_blocks = "brace"
target_blocks = "indent"
indent_target = "    "
`,
		},
		{
			name: "unknown block style",
			toml: `
version = "1.0.0"
[[pair]]
source = "a"
target = "b"
source_blocks = "curly"
target_blocks = "indent"
indent_target = "    "
`,
		},
		{
			name: "indent style without unit",
			toml: `
version = "1.0.0"
[[pair]]
source = "a"
target = "b"
source_blocks = "indent"
target_blocks = "brace"
`,
		},
		{
			name: "invalid rule pattern",
			toml: `
version = "1.0.0"
[[pair]]
source = "a"
target = "b"
source_blocks = "brace"
target_blocks = "brace"
[[pair.rule]]
pattern = "("
replacement = "x"
`,
		},
		{
			name: "duplicate pair",
			toml: `
version = "1.0.0"
[[pair]]
source = "a"
target = "b"
source_blocks = "brace"
target_blocks = "brace"
[[pair]]
source = "a"
target = "b"
source_blocks = "brace"
target_blocks = "brace"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse([]byte(tt.toml))
			assert.Error(t, err)
		})
	}
}
