package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(console(os.Stderr, false))
		SetLevel("info")
	})
	return &buf
}

func TestComponentLoggerIsTagged(t *testing.T) {
	buf := captureOutput(t)
	SetLevel("info")

	log := Component("tray")
	log.Info().Str("id", "quit").Msg("menu clicked")

	out := buf.String()
	assert.Contains(t, out, `"component":"tray"`)
	assert.Contains(t, out, `"id":"quit"`)
	assert.Contains(t, out, `"message":"menu clicked"`)
}

func TestSetLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			captureOutput(t)
			SetLevel(tt.level)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestLevelFiltersHelpers(t *testing.T) {
	buf := captureOutput(t)
	SetLevel("warn")

	Debug("hidden")
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	Error("failed", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "boom")
}

func TestSetOutputFile(t *testing.T) {
	captureOutput(t)
	path := filepath.Join(t.TempDir(), "logs", "soundboard.log")

	require.NoError(t, SetOutputFile(path))
	Warn("to file")
	CloseLogFile()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
