package logger

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Color palette (warm, muted, easy on eyes)
const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"

	colorFg       = "\x1b[38;5;223m" // Soft cream
	colorAqua     = "\x1b[38;5;108m" // Muted cyan-green
	colorOrange   = "\x1b[38;5;208m" // Warm orange
	colorYellow   = "\x1b[38;5;214m" // Soft yellow
	colorGreen    = "\x1b[38;5;142m" // Muted green
	colorBlue     = "\x1b[38;5;109m" // Soft blue
	colorPurple   = "\x1b[38;5;175m" // Muted purple
	colorRed      = "\x1b[38;5;167m" // Warm red
	colorRedBg    = "\x1b[48;5;88m"  // Dark red background
	colorYellowBg = "\x1b[48;5;58m"  // Dark yellow background
)

// bracketPattern matches bracketed contexts in messages: [job:XXX], [clone], etc.
var bracketPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// appendColored writes text wrapped in the given color
func appendColored(b *strings.Builder, color, text string) {
	b.WriteString(color)
	b.WriteString(text)
	b.WriteString(colorReset)
}

// colorComponent picks a stable color per component name
func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	if hash%2 == 0 {
		return colorOrange
	}
	return colorYellow
}

// colorizeMessage applies context-aware colorization to a log message:
// job IDs and stage markers in brackets get their own colors, the rest
// stays in the base foreground.
func colorizeMessage(msg string) string {
	var result strings.Builder
	last := 0

	for _, match := range bracketPattern.FindAllStringSubmatchIndex(msg, -1) {
		if before := msg[last:match[0]]; before != "" {
			appendColored(&result, colorFg, before)
		}

		// Job IDs ([job:JB...]) in blue, stage markers ([clone], [publish],
		// [per_file]) in orange
		color := colorOrange
		if strings.HasPrefix(msg[match[2]:match[3]], "job:") {
			color = colorBlue
		}
		appendColored(&result, color, msg[match[0]:match[1]])

		last = match[1]
	}

	if remaining := msg[last:]; remaining != "" {
		appendColored(&result, colorFg, remaining)
	}

	return result.String()
}

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35.218  s.pipeline  [job:JB3f] clone complete  src/main.py 42ms"
//
// Millisecond timestamps matter here: per-file events from parallel
// workers land within the same second.
type minimalEncoder struct {
	zapcore.Encoder // Embedded base encoder handles field serialization
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line := buffer.NewPool().Get()

	line.AppendString(colorAqua)
	line.AppendString(ent.Time.Format("15:04:05.000"))
	line.AppendString(colorReset)

	// Level: only show for WARN/ERROR with bold + background
	if ent.Level != zapcore.InfoLevel {
		line.AppendString("  ")
		line.AppendString(levelColorString(ent.Level))
	}

	// Component name (abbreviated) for visual grouping
	if ent.LoggerName != "" {
		line.AppendString("  ")
		line.AppendString(colorComponent(ent.LoggerName))
		line.AppendString(abbreviateName(ent.LoggerName))
		line.AppendString(colorReset)
	}

	line.AppendString("  ")
	line.AppendString(colorizeMessage(ent.Message))

	if len(fields) > 0 {
		line.AppendString("  ")
		line.AppendString(extractFieldValues(fields))
	}

	line.AppendString("\n")
	return line, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	switch level {
	case zapcore.WarnLevel:
		return colorBold + colorYellowBg + colorYellow + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + colorRedBg + colorRed + "ERROR" + colorReset
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + colorRedBg + colorRed + level.CapitalString() + colorReset
	default:
		return ""
	}
}

// abbreviateName shortens component names: pipeline -> p, strive.runner -> s.runner
func abbreviateName(name string) string {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) < 2 || parts[0] == "" {
		return name
	}
	return string(parts[0][0]) + "." + parts[1]
}

// getFieldValue extracts the value from a zap field, handling any field type.
// Serializing through a map encoder keeps arrays, durations, and custom
// types renderable without per-type switches.
func getFieldValue(field zapcore.Field) string {
	if field.Type == zapcore.SkipType {
		return ""
	}
	if field.Type == zapcore.StringType {
		return field.String
	}

	m := zapcore.NewMapObjectEncoder()
	field.AddTo(m)
	val, ok := m.Fields[field.Key]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", val)
}

// extractFieldValues renders structured fields. Known Strive fields get
// compact value-only formatting with semantic colors; every other field is
// preserved as key=value. Fields must never be silently discarded.
//
// Input: {"job_id": "JB3f", "path": "src/main.py", "duration_ms": 42}
// Output: "JB3f src/main.py 42ms" (with colored IDs and numbers)
func extractFieldValues(fields []zapcore.Field) string {
	var values []string
	var transpiled, total string

	for _, field := range fields {
		if field.Type == zapcore.SkipType {
			continue
		}
		switch field.Key {
		case FieldJobID:
			val := getFieldValue(field)
			if val != "" {
				values = append(values, colorBlue+val+colorReset)
			}
		case FieldPath, FieldFile:
			val := getFieldValue(field)
			if val != "" {
				values = append(values, colorGreen+val+colorReset)
			}
		case FieldLanguage, FieldSource, FieldTarget, FieldStage:
			val := getFieldValue(field)
			if val != "" {
				values = append(values, colorPurple+val+colorReset)
			}
		case FieldTranspiled:
			transpiled = getFieldValue(field)
		case FieldTotalCount:
			total = getFieldValue(field)
		case FieldDurationMS:
			val := getFieldValue(field)
			if val != "" {
				values = append(values, colorPurple+val+colorReset+"ms")
			}
		case FieldError:
			val := getFieldValue(field)
			if val != "" {
				values = append(values, colorRed+val+colorReset)
			}
		default:
			val := getFieldValue(field)
			values = append(values, colorFg+field.Key+"="+colorReset+val)
		}
	}

	// Special formatting for per-file progress counts
	if transpiled != "" && total != "" {
		values = append(values, colorFg+"("+colorPurple+transpiled+colorReset+colorFg+"/"+colorPurple+total+colorReset+colorFg+" files)"+colorReset)
	}

	if len(values) == 0 {
		return ""
	}

	return strings.Join(values, " ")
}
