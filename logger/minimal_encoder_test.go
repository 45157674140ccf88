package logger

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stripANSI removes ANSI color codes from a string for testing
func stripANSI(str string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(str, "")
}

func testEntry(msg string) zapcore.Entry {
	return zapcore.Entry{
		Level:      zapcore.InfoLevel,
		Time:       time.Date(2025, 8, 14, 13, 4, 35, 218_000_000, time.UTC),
		LoggerName: "pipeline",
		Message:    msg,
	}
}

// TestMinimalEncoderNeverDiscardsFields ensures the minimal encoder NEVER
// silently discards log fields. Unknown keys must fall back to key=value.
func TestMinimalEncoderNeverDiscardsFields(t *testing.T) {
	encoder := newMinimalEncoder()

	testFields := []struct {
		field    zapcore.Field
		mustFind string // what the rendered line must contain
	}{
		{zap.String("modification", "add auth"), "modification=add auth"},
		{zap.Bool("optimize", true), "optimize=true"},
		{zap.Float64("compression_ratio", 0.8), "compression_ratio=0.8"},
		{zap.Strings("modifications", []string{"add auth", "add logging"}), "modifications"},

		// Keys the encoder has never heard of must survive too
		{zap.String("random_field_xyz", "important_data"), "random_field_xyz=important_data"},
		{zap.Int("retry_budget", 999), "retry_budget=999"},

		// Edge-case key shapes
		{zap.String("clone_depth_override", "full"), "clone_depth_override=full"},
		{zap.String("publish.base.url", "file:///tmp"), "publish.base.url=file:///tmp"},

		// Numeric widths
		{zap.Int32("indent_width", 4), "indent_width=4"},
		{zap.Int64("bytes_written", 9999999), "bytes_written=9999999"},

		{zap.Error(nil), ""}, // nil error must not crash

		// Special-cased Strive fields keep their compact value-only form
		{zap.String(FieldJobID, "JB3f"), "JB3f"},
		{zap.String(FieldPath, "src/main.py"), "src/main.py"},
		{zap.Int(FieldDurationMS, 42), "42ms"},
	}

	var allFields []zapcore.Field
	for _, tf := range testFields {
		allFields = append(allFields, tf.field)
	}

	buf, err := encoder.EncodeEntry(testEntry("testing field preservation"), allFields)
	if err != nil {
		t.Fatalf("EncodeEntry: %v", err)
	}

	cleanOutput := stripANSI(buf.String())
	for _, tf := range testFields {
		if tf.mustFind != "" && !strings.Contains(cleanOutput, tf.mustFind) {
			t.Errorf("field silently discarded from log output: %s\noutput: %s", tf.mustFind, cleanOutput)
		}
	}
}

// TestMinimalEncoderFieldCount checks that every passed field appears in
// the rendered line exactly once
func TestMinimalEncoderFieldCount(t *testing.T) {
	encoder := newMinimalEncoder()

	keys := []string{"repo", "branch", "remote", "depth", "bare", "progress"}
	fields := []zapcore.Field{
		zap.String(keys[0], "acme/app"),
		zap.String(keys[1], "main"),
		zap.String(keys[2], "origin"),
		zap.Int(keys[3], 1),
		zap.Bool(keys[4], false),
		zap.Float64(keys[5], 0.5),
	}

	buf, err := encoder.EncodeEntry(testEntry("field count test"), fields)
	if err != nil {
		t.Fatalf("EncodeEntry: %v", err)
	}

	output := buf.String()
	for _, key := range keys {
		if n := strings.Count(output, key+"="); n != 1 {
			t.Errorf("expected key %q once in output, found %d times: %s", key, n, output)
		}
	}
}

func TestMinimalEncoderProgressCounts(t *testing.T) {
	encoder := newMinimalEncoder()

	fields := []zapcore.Field{
		zap.Int(FieldTranspiled, 7),
		zap.Int(FieldTotalCount, 9),
	}

	buf, err := encoder.EncodeEntry(testEntry("[job:JB3f] per-file processing complete"), fields)
	if err != nil {
		t.Fatalf("EncodeEntry: %v", err)
	}

	cleanOutput := stripANSI(buf.String())
	if !strings.Contains(cleanOutput, "(7/9 files)") {
		t.Errorf("expected progress counts '(7/9 files)' in output: %s", cleanOutput)
	}
}

func TestMinimalEncoderTimestampMillis(t *testing.T) {
	encoder := newMinimalEncoder()

	buf, err := encoder.EncodeEntry(testEntry("clone complete"), nil)
	if err != nil {
		t.Fatalf("EncodeEntry: %v", err)
	}

	if !strings.Contains(stripANSI(buf.String()), "13:04:35.218") {
		t.Errorf("expected millisecond timestamp in output: %s", stripANSI(buf.String()))
	}
}

func TestColorizeMessageBrackets(t *testing.T) {
	tests := []struct {
		name    string
		msg     string
		keeps   string
		colored string // bracket content expected to be wrapped in color
	}{
		{
			name:    "job bracket",
			msg:     "[job:JB3f] clone complete",
			keeps:   "clone complete",
			colored: "[job:JB3f]",
		},
		{
			name:    "stage bracket",
			msg:     "[publish] pushing assembled tree",
			keeps:   "pushing assembled tree",
			colored: "[publish]",
		},
		{
			name:  "no brackets",
			msg:   "plain message",
			keeps: "plain message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := colorizeMessage(tt.msg)
			clean := stripANSI(out)
			if clean != tt.msg {
				t.Errorf("colorizeMessage changed text: got %q want %q", clean, tt.msg)
			}
			if !strings.Contains(clean, tt.keeps) {
				t.Errorf("colorizeMessage lost %q in %q", tt.keeps, clean)
			}
			if tt.colored != "" && !strings.Contains(out, tt.colored) {
				t.Errorf("expected bracket %q preserved in colored output", tt.colored)
			}
		})
	}
}

func TestAbbreviateName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pipeline", "pipeline"},
		{"pipeline.runner", "p.runner"},
		{"strive.vcs.publish", "s.vcs.publish"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := abbreviateName(tt.in); got != tt.want {
			t.Errorf("abbreviateName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestUnknownFieldTypes feeds the encoder field types it has no special
// handling for; each must surface in some form rather than vanish
func TestUnknownFieldTypes(t *testing.T) {
	encoder := newMinimalEncoder()

	fields := []zapcore.Field{
		zap.Duration("clone_timeout", 5 * time.Minute),
		zap.Time("started_at", time.Now()),
		zap.Uint("files_seen", 100),
		zap.Uint64("repo_bytes", 5000000000),
		zap.ByteString("snippet", []byte("def main():")),
		zap.Binary("digest", []byte{0x01, 0x02, 0x03}),
	}

	buf, err := encoder.EncodeEntry(testEntry("testing unhandled field types"), fields)
	if err != nil {
		t.Fatalf("EncodeEntry: %v", err)
	}

	cleanOutput := stripANSI(buf.String())
	for _, expected := range []string{"clone_timeout", "started_at", "files_seen", "repo_bytes", "snippet", "digest"} {
		if !strings.Contains(cleanOutput, expected) {
			t.Errorf("field with key %q completely dropped from output: %s", expected, cleanOutput)
		}
	}
}
