package classify

import "testing"

func TestIsCodeFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"main.py", true},
		{"src/app.js", true},
		{"lib.rs", true},
		{"server.go", true},
		{"legacy.cpp", true},
		{"Widget.java", true},
		{"UPPER.PY", true},
		{"README.md", false},
		{"Makefile", false},
		{"data.json", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCodeFile(tt.path); got != tt.want {
			t.Errorf("IsCodeFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    string
	}{
		{"python by extension", "app/main.py", "", "python"},
		{"javascript by extension", "web/index.js", "", "javascript"},
		{"rust by extension", "src/lib.rs", "fn main() {}", "rust"},
		{"uppercase extension", "MAIN.PY", "", "python"},
		{"python shebang", "bin/tool", "#!/usr/bin/env python3\nprint('hi')", "python"},
		{"node shebang", "bin/cli", "#!/usr/bin/env node\nconsole.log('hi')", "javascript"},
		{"unplaceable shebang", "bin/run", "#!/bin/bash\necho hi", Unknown},
		{"go extension has no rules", "main.go", "package main", Unknown},
		{"no signal at all", "notes.txt", "just words", Unknown},
		{"empty content", "mystery", "", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.path, []byte(tt.content)); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestTargetExtension(t *testing.T) {
	if got := TargetExtension("python"); got != ".py" {
		t.Errorf("TargetExtension(python) = %q", got)
	}
	if got := TargetExtension("javascript"); got != ".js" {
		t.Errorf("TargetExtension(javascript) = %q", got)
	}
	if got := TargetExtension("cobol"); got != ".txt" {
		t.Errorf("TargetExtension(cobol) = %q, want .txt fallback", got)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		path   string
		target string
		want   string
	}{
		{"src/main.py", "javascript", "src/main.js"},
		{"src/app.js", "python", "src/app.py"},
		{"deep/x.py/tool.py", "javascript", "deep/x.py/tool.js"},
		{"weird.py.py", "javascript", "weird.py.js"},
		{"src/lib.rs", "fortran", "src/lib.txt"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.path, tt.target); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.path, tt.target, got, tt.want)
		}
	}
}
