package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(LevelName(tt.verbosity), func(t *testing.T) {
			assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity))
		})
	}
}

func TestInitializeWriterJSON(t *testing.T) {
	defer func() { Logger = zap.NewNop().Sugar() }()

	var buf bytes.Buffer
	require.NoError(t, InitializeWriter(&buf, true, VerbosityInfo))

	ComponentLogger("generator.pass").Infow("generated members", FieldCommand, "vkCreateBuffer", FieldCount, 3)
	Cleanup()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "generated members", entry["msg"])
	assert.Equal(t, "generator.pass", entry["logger"])
	assert.Equal(t, "vkCreateBuffer", entry[FieldCommand])
	assert.EqualValues(t, 3, entry[FieldCount])
}

func TestInitializeWriterFiltersByVerbosity(t *testing.T) {
	defer func() { Logger = zap.NewNop().Sugar() }()

	var buf bytes.Buffer
	require.NoError(t, InitializeWriter(&buf, true, VerbosityUser))

	Infow("hidden")
	Debugw("hidden")
	Warnw("shown")
	Cleanup()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestMinimalEncoderPlain(t *testing.T) {
	defer SetTheme("everforest")
	SetTheme("plain")

	enc := newMinimalEncoder()
	ent := zapcore.Entry{
		Level:      zapcore.WarnLevel,
		Time:       time.Date(2024, 1, 2, 13, 4, 35, 0, time.UTC),
		LoggerName: "registry.loader",
		Message:    "skipping element",
	}
	buf, err := enc.EncodeEntry(ent, []zapcore.Field{
		zap.String(FieldType, "VkFoo"),
		zap.Int(FieldCount, 2),
		zap.String("reason", "no category"),
	})
	require.NoError(t, err)

	assert.Equal(t, "13:04:35  WARN  r.loader  skipping element  VkFoo count=2 reason=no category\n", buf.String())
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "g.pass", abbreviateName("generator.pass"))
	assert.Equal(t, "synth", abbreviateName("synth"))
	assert.Equal(t, "s.a.b", abbreviateName("synth.a.b"))
}

func TestSetThemeIgnoresUnknown(t *testing.T) {
	defer SetTheme("everforest")
	SetTheme("gruvbox")
	SetTheme("solarized")
	assert.Equal(t, "gruvbox", currentTheme)
}
