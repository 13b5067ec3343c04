package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

type palette struct {
	fg     string
	time   string
	accent []string
	ident  string
	number string
	warn   string
	warnBg string
	err    string
	errBg  string
}

var themes = map[string]palette{
	"gruvbox": {
		fg:     "\x1b[38;5;223m",
		time:   "\x1b[38;5;108m",
		accent: []string{"\x1b[38;5;208m", "\x1b[38;5;214m"},
		ident:  "\x1b[38;5;109m",
		number: "\x1b[38;5;175m",
		warn:   "\x1b[38;5;214m",
		warnBg: "\x1b[48;5;58m",
		err:    "\x1b[38;5;167m",
		errBg:  "\x1b[48;5;88m",
	},
	"everforest": {
		fg:     "\x1b[38;5;223m",
		time:   "\x1b[38;5;107m",
		accent: []string{"\x1b[38;5;108m", "\x1b[38;5;65m", "\x1b[38;5;208m"},
		ident:  "\x1b[38;5;109m",
		number: "\x1b[38;5;108m",
		warn:   "\x1b[38;5;179m",
		warnBg: "\x1b[48;5;58m",
		err:    "\x1b[38;5;167m",
		errBg:  "\x1b[48;5;52m",
	},
	"plain": {},
}

var currentTheme = "everforest"

// SetTheme configures the color scheme for console output. Unknown names are ignored.
func SetTheme(theme string) {
	if _, ok := themes[theme]; ok {
		currentTheme = theme
	}
}

func colors() palette {
	return themes[currentTheme]
}

func (p palette) component(name string) string {
	if len(p.accent) == 0 {
		return ""
	}
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	return p.accent[hash%len(p.accent)]
}

func (p palette) wrap(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + colorReset
}

// minimalEncoder is a compact console encoder.
// Format: "13:04:35  g.pass  generated members  vkCreateBuffer (3 variants)"
type minimalEncoder struct {
	zapcore.Encoder
	pool buffer.Pool
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		pool:    buffer.NewPool(),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		pool:    enc.pool,
	}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	p := colors()
	final := enc.pool.Get()

	final.AppendString(p.wrap(p.time, ent.Time.Format("15:04:05")))

	if lvl := p.level(ent.Level); lvl != "" {
		final.AppendString("  ")
		final.AppendString(lvl)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(p.wrap(p.component(ent.LoggerName), abbreviateName(ent.LoggerName)))
	}

	final.AppendString("  ")
	final.AppendString(p.wrap(p.fg, ent.Message))

	if values := p.fieldValues(fields); values != "" {
		final.AppendString("  ")
		final.AppendString(values)
	}

	final.AppendString("\n")
	return final, nil
}

// level returns the badge for non-info levels; info entries carry none.
func (p palette) level(level zapcore.Level) string {
	switch level {
	case zapcore.InfoLevel:
		return ""
	case zapcore.DebugLevel:
		return "DEBUG"
	case zapcore.WarnLevel:
		if p.warn == "" {
			return "WARN"
		}
		return colorBold + p.warnBg + p.warn + "WARN" + colorReset
	default:
		if p.err == "" {
			return level.CapitalString()
		}
		return colorBold + p.errBg + p.err + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: generator.pass -> g.pass
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

func fieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.BoolType:
		return fmt.Sprintf("%t", field.Integer == 1)
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error()
		}
	}
	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}
	return ""
}

// fieldValues renders element names bare and everything else as key=value.
func (p palette) fieldValues(fields []zapcore.Field) string {
	var values []string
	for _, field := range fields {
		val := fieldValue(field)
		if val == "" {
			continue
		}
		switch field.Key {
		case FieldCommand, FieldHandle, FieldType, FieldExtension, FieldPlatform:
			values = append(values, p.wrap(p.ident, val))
		case FieldCount, FieldTotalCount, FieldDurationMS:
			values = append(values, field.Key+"="+p.wrap(p.number, val))
		default:
			values = append(values, field.Key+"="+val)
		}
	}
	return strings.Join(values, " ")
}
