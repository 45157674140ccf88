package transpile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/rules"
)

const samplePython = `def greet(name):
    print(f"Hello, {name}!")
    return True`

const sampleJavaScript = "function greet(name) {\n" +
	"  console.log(`Hello, ${name}!`);\n" +
	"  return true;\n" +
	"}"

func newTranspiler(t *testing.T) *Transpiler {
	t.Helper()
	table, err := rules.Load()
	require.NoError(t, err)
	return New(table)
}

func TestTranspilePythonToJavaScript(t *testing.T) {
	tr := newTranspiler(t)

	result, err := tr.Transpile(Unit{Text: samplePython, From: "python", To: "javascript"})
	require.NoError(t, err)
	assert.Equal(t, StatusTranspiled, result.Status)
	assert.Equal(t, rules.LanguagePair{Source: "python", Target: "javascript"}, result.Pair)

	assert.Contains(t, result.Text, "function greet(name)")
	assert.Contains(t, result.Text, "console.log(`Hello, ${name}!`)")
	assert.Contains(t, result.Text, "return true;")

	expected := "function greet(name) {\n" +
		"  console.log(`Hello, ${name}!`)\n" +
		"  return true;\n" +
		"}"
	assert.Equal(t, expected, result.Text)
}

func TestTranspileJavaScriptToPython(t *testing.T) {
	tr := newTranspiler(t)

	result, err := tr.Transpile(Unit{Text: sampleJavaScript, From: "javascript", To: "python"})
	require.NoError(t, err)
	assert.Equal(t, StatusTranspiled, result.Status)

	assert.Contains(t, result.Text, "def greet(name):")
	assert.Contains(t, result.Text, "print(f'Hello, {name}!')")
	assert.Contains(t, result.Text, "return True")

	expected := "def greet(name):\n" +
		"    print(f'Hello, {name}!');\n" +
		"    return True"
	assert.Equal(t, expected, result.Text)
}

func TestTranspileConditionals(t *testing.T) {
	tr := newTranspiler(t)

	source := "if a:\n" +
		"    x = 1\n" +
		"elif b:\n" +
		"    x = 2\n" +
		"else:\n" +
		"    x = 3"

	result, err := tr.Transpile(Unit{Text: source, From: "python", To: "javascript"})
	require.NoError(t, err)

	expected := "if (a) {\n" +
		"  let x = 1;\n" +
		"} else if (b) {\n" +
		"  let x = 2;\n" +
		"} else {\n" +
		"  let x = 3;\n" +
		"}"
	assert.Equal(t, expected, result.Text)
}

func TestTranspileRoundTrip(t *testing.T) {
	tr := newTranspiler(t)

	toJS, err := tr.Transpile(Unit{Text: samplePython, From: "python", To: "javascript"})
	require.NoError(t, err)

	backToPy, err := tr.Transpile(Unit{Text: toJS.Text, From: "javascript", To: "python"})
	require.NoError(t, err)

	assert.Contains(t, backToPy.Text, "print")
	expected := "def greet(name):\n" +
		"    print(f'Hello, {name}!')\n" +
		"    return True"
	assert.Equal(t, expected, backToPy.Text)
}

func TestTranspileRoundTripConditionals(t *testing.T) {
	tr := newTranspiler(t)

	source := "if a:\n" +
		"    x = 1\n" +
		"elif b:\n" +
		"    x = 2\n" +
		"else:\n" +
		"    x = 3"

	toJS, err := tr.Transpile(Unit{Text: source, From: "python", To: "javascript"})
	require.NoError(t, err)
	back, err := tr.Transpile(Unit{Text: toJS.Text, From: "javascript", To: "python"})
	require.NoError(t, err)

	// Per-line indentation depth survives the double conversion intact.
	assert.Equal(t, source, back.Text)
}

func TestTranspileIndentationDepth(t *testing.T) {
	tr := newTranspiler(t)

	source := "def foo():\n" +
		"    x = 1\n" +
		"    if True:\n" +
		"        y = 2"

	result, err := tr.Transpile(Unit{Text: source, From: "python", To: "javascript"})
	require.NoError(t, err)

	lines := strings.Split(result.Text, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "  let x = 1;", lines[1])
	assert.Equal(t, "    let y = 2;", lines[3])

	expected := "function foo() {\n" +
		"  let x = 1;\n" +
		"  if (true) {\n" +
		"    let y = 2;\n" +
		"  }\n" +
		"}"
	assert.Equal(t, expected, result.Text)
}

func TestTranspileNoRecognizedConstruct(t *testing.T) {
	tr := newTranspiler(t)

	result, err := tr.Transpile(Unit{Text: "x = 1", From: "python", To: "javascript"})
	require.NoError(t, err)
	assert.Equal(t, "let x = 1;", result.Text)
	assert.Equal(t, StatusTranspiled, result.Status)

	empty, err := tr.Transpile(Unit{Text: "", From: "python", To: "javascript"})
	require.NoError(t, err)
	assert.Equal(t, "", empty.Text)
	assert.Equal(t, StatusTranspiled, empty.Status)
}

func TestTranspileUnsupportedPair(t *testing.T) {
	tr := newTranspiler(t)

	_, err := tr.Transpile(Unit{Text: "fn main() {}", From: "rust", To: "go"})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedPairError(err))

	_, err = tr.Transpile(Unit{Text: "x = 1", From: "python", To: "python"})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedPairError(err))
}

func TestTranspileStableOutput(t *testing.T) {
	tr := newTranspiler(t)

	unit := Unit{Text: samplePython, From: "python", To: "javascript"}
	first, err := tr.Transpile(unit)
	require.NoError(t, err)
	second, err := tr.Transpile(unit)
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
}

func TestTranspileOddIndentationPassesThrough(t *testing.T) {
	tr := newTranspiler(t)

	// Three spaces is not a whole multiple of the four-space unit. The
	// line is flagged and passed through with its indentation untouched.
	source := "def f():\n   x = 1"
	result, err := tr.Transpile(Unit{Text: source, From: "python", To: "javascript"})
	require.NoError(t, err)
	assert.Equal(t, "function f() {\n   let x = 1;", result.Text)
}

func TestTranspileTrailingNewline(t *testing.T) {
	tr := newTranspiler(t)

	result, err := tr.Transpile(Unit{Text: samplePython + "\n", From: "python", To: "javascript"})
	require.NoError(t, err)

	// Closers land before the trailing newline, not after it.
	assert.True(t, strings.HasSuffix(result.Text, "}\n"))
	expected := "function greet(name) {\n" +
		"  console.log(`Hello, ${name}!`)\n" +
		"  return true;\n" +
		"}\n"
	assert.Equal(t, expected, result.Text)
}

func TestTranspileBlankLineBeforeDedent(t *testing.T) {
	tr := newTranspiler(t)

	source := "def f():\n" +
		"    x = 1\n" +
		"\n" +
		"y = 2"

	result, err := tr.Transpile(Unit{Text: source, From: "python", To: "javascript"})
	require.NoError(t, err)

	// The synthesized closer attaches to the dedent point, after the
	// blank line.
	expected := "function f() {\n" +
		"  let x = 1;\n" +
		"\n" +
		"}\n" +
		"let y = 2;"
	assert.Equal(t, expected, result.Text)

	back, err := tr.Transpile(Unit{Text: result.Text, From: "javascript", To: "python"})
	require.NoError(t, err)
	assert.Equal(t, source, back.Text)
}
