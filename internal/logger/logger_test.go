package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			opts := DefaultOptions()
			opts.Level = tt.level
			opts.Console = &buf

			l, err := New(opts)
			require.NoError(t, err)
			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")
			l.Error("error message")
			_ = l.Sync()

			out := buf.String()
			for _, exp := range tt.expected {
				assert.Contains(t, out, exp)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, out, exc)
			}
		})
	}
}

func TestUnknownLevel(t *testing.T) {
	opts := DefaultOptions()
	opts.Level = "loud"
	_, err := New(opts)
	assert.Error(t, err)
}

func TestFileOutput(t *testing.T) {
	for _, asJSON := range []bool{false, true} {
		name := "console"
		if asJSON {
			name = "json"
		}
		t.Run(name, func(t *testing.T) {
			logFile := filepath.Join(t.TempDir(), "run.log")
			opts := DefaultOptions()
			opts.Console = nil
			opts.File = logFile
			opts.Compress = false
			opts.JSON = asJSON

			l, err := New(opts)
			require.NoError(t, err)
			l.Info("frame rendered", zap.Int("frame", 7))
			require.NoError(t, l.Sync())

			content, err := os.ReadFile(logFile)
			require.NoError(t, err)
			assert.Contains(t, string(content), "frame rendered")
			if asJSON {
				assert.True(t, strings.Contains(string(content), `"frame":7`))
			}
		})
	}
}

func TestInitReplacesGlobal(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Console = &buf
	require.NoError(t, Init(opts))
	Log.Info("hello")
	Sync()
	assert.Contains(t, buf.String(), "hello")
}

func TestNoOutputsIsNop(t *testing.T) {
	opts := DefaultOptions()
	opts.Console = nil
	l, err := New(opts)
	require.NoError(t, err)
	assert.NotNil(t, l)
	l.Info("dropped")
}
