// Package classify maps file paths to language identifiers for the
// reconstruction pipeline. Classification is extension-first with a
// shebang fallback; anything unplaceable is Unknown, which callers
// treat as skip, never as failure.
package classify

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
)

// Unknown is returned when neither the extension nor the content
// identifies a language.
const Unknown = "unknown"

// codeExtensions lists the file types the pipeline attempts to process.
// Everything else is copied through as a plain asset.
var codeExtensions = map[string]bool{
	".py":   true,
	".js":   true,
	".ts":   true,
	".rs":   true,
	".go":   true,
	".c":    true,
	".cpp":  true,
	".java": true,
}

// extLanguages maps extensions to the languages the rule table can
// actually name. Code extensions outside this map classify as Unknown.
var extLanguages = map[string]string{
	".py": "python",
	".js": "javascript",
	".rs": "rust",
}

// targetExtensions maps target languages to their output extension.
var targetExtensions = map[string]string{
	"python":     ".py",
	"javascript": ".js",
	"rust":       ".rs",
}

const fallbackExtension = ".txt"

// IsCodeFile reports whether path looks like a source file the
// pipeline should attempt to process.
func IsCodeFile(path string) bool {
	return codeExtensions[strings.ToLower(filepath.Ext(path))]
}

// Detect classifies a file by extension, falling back to a shebang
// sniff of the content.
func Detect(path string, content []byte) string {
	if lang, ok := extLanguages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return sniffShebang(content)
}

// TargetExtension returns the output file extension for a target
// language, or a plain-text extension when the language is not mapped.
func TargetExtension(lang string) string {
	if ext, ok := targetExtensions[lang]; ok {
		return ext
	}
	return fallbackExtension
}

// OutputPath substitutes the target language's extension for the
// path's current extension. Only the trailing extension is replaced;
// earlier occurrences of the same text in the path are untouched.
func OutputPath(path, targetLang string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + TargetExtension(targetLang)
}

func sniffShebang(content []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	if !scanner.Scan() {
		return Unknown
	}
	line := strings.TrimSpace(scanner.Text())
	if !strings.HasPrefix(line, "#!") {
		return Unknown
	}
	switch {
	case strings.Contains(line, "python"):
		return "python"
	case strings.Contains(line, "node"):
		return "javascript"
	}
	return Unknown
}
