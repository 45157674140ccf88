package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizePythonRemovesUnusedImport(t *testing.T) {
	result := Optimize("import zzz\nprint('hi')", "python")

	assert.Equal(t, "print('hi')", result.Code)
	require.Len(t, result.Improvements, 1)
	assert.Equal(t, "Removed unused import: import zzz", result.Improvements[0])
	assert.Equal(t, len(result.Original)-len(result.Code), result.Savings)
}

func TestOptimizePythonKeepsUsedImport(t *testing.T) {
	code := "import requests\nresp = requests.get(url)"
	result := Optimize(code, "python")

	assert.Equal(t, code, result.Code)
	assert.Empty(t, result.Improvements)
}

func TestOptimizePythonAllowlistedImportSurvives(t *testing.T) {
	code := "import sys\nprint('nothing uses it')"
	result := Optimize(code, "python")

	assert.Equal(t, code, result.Code)
	assert.Empty(t, result.Improvements)
}

func TestOptimizePythonFromImport(t *testing.T) {
	kept := "from collections import OrderedDict\nx = OrderedDict()"
	result := Optimize(kept, "python")
	assert.Equal(t, kept, result.Code)

	result = Optimize("from zzz import helper\nprint('hi')", "python")
	assert.Equal(t, "print('hi')", result.Code)
	require.Len(t, result.Improvements, 1)
	assert.Contains(t, result.Improvements[0], "from zzz import helper")
}

func TestOptimizePythonAliasImport(t *testing.T) {
	kept := "import numpy as np\nx = np.zeros(3)"
	result := Optimize(kept, "python")
	assert.Equal(t, kept, result.Code)

	result = Optimize("import numpy as np\nprint('hi')", "python")
	assert.Equal(t, "print('hi')", result.Code)
}

func TestOptimizePythonStarImportSurvives(t *testing.T) {
	// A star import is never provably unused.
	code := "from zzz import *\nprint('hi')"
	result := Optimize(code, "python")
	assert.Equal(t, code, result.Code)
}

func TestOptimizePythonIndentedImportSurvives(t *testing.T) {
	code := "def f():\n    import zzz\n    return zzz"
	result := Optimize(code, "python")
	assert.Equal(t, code, result.Code)
}

func TestOptimizePythonRemovesPassWithSibling(t *testing.T) {
	result := Optimize("def f():\n    x = 1\n    pass", "python")

	assert.Equal(t, "def f():\n    x = 1", result.Code)
	require.Len(t, result.Improvements, 1)
	assert.Equal(t, "Removed unnecessary pass", result.Improvements[0])
}

func TestOptimizePythonKeepsSolePass(t *testing.T) {
	code := "def f():\n    pass"
	result := Optimize(code, "python")

	assert.Equal(t, code, result.Code)
	assert.Empty(t, result.Improvements)
}

func TestOptimizePythonKeepsPassPairs(t *testing.T) {
	// Both pass lines would go in the same sweep, so neither can count
	// as the other's sibling.
	code := "def f():\n    pass\n    pass"
	result := Optimize(code, "python")

	assert.Equal(t, code, result.Code)
	assert.Empty(t, result.Improvements)
}

func TestOptimizePythonPassAfterNestedBlock(t *testing.T) {
	code := "def f():\n    if a:\n        y = 2\n    pass"
	result := Optimize(code, "python")

	assert.Equal(t, "def f():\n    if a:\n        y = 2", result.Code)
}

func TestOptimizePythonCommentIsNotASibling(t *testing.T) {
	// Removing the pass would leave a comment-only block.
	code := "def f():\n    # placeholder\n    pass"
	result := Optimize(code, "python")

	assert.Equal(t, code, result.Code)
	assert.Empty(t, result.Improvements)
}

func TestOptimizeJSVarToLet(t *testing.T) {
	result := Optimize("var x = 1;\nvar y = 2;", "javascript")

	assert.Equal(t, "let x = 1;\nlet y = 2;", result.Code)
	require.Len(t, result.Improvements, 1)
	assert.Equal(t, "Replaced var with let", result.Improvements[0])
}

func TestOptimizeJSNoVars(t *testing.T) {
	code := "let x = 1;\nconst y = 2;"
	result := Optimize(code, "javascript")

	assert.Equal(t, code, result.Code)
	assert.Empty(t, result.Improvements)
}

func TestOptimizeJSWordBoundary(t *testing.T) {
	// Identifiers ending in var are not declarations.
	code := "let invar = 1;"
	result := Optimize(code, "javascript")
	assert.Equal(t, code, result.Code)
}

func TestOptimizeUnknownLanguage(t *testing.T) {
	code := "SELECT * FROM t;"
	result := Optimize(code, "sql")

	assert.Equal(t, code, result.Code)
	assert.Empty(t, result.Improvements)
	assert.Zero(t, result.Savings)
}

func TestOptimizeIdempotent(t *testing.T) {
	inputs := []struct {
		code string
		lang string
	}{
		{"import zzz\nimport os\nprint('hi')\ndef f():\n    x = 1\n    pass", "python"},
		{"var x = 1;\nvar y = x;", "javascript"},
		{"plain text", "unknown"},
	}

	for _, in := range inputs {
		first := Optimize(in.code, in.lang)
		second := Optimize(first.Code, in.lang)

		assert.Equal(t, first.Code, second.Code, "lang=%s", in.lang)
		assert.Empty(t, second.Improvements, "lang=%s", in.lang)
		assert.Zero(t, second.Savings, "lang=%s", in.lang)
	}
}
