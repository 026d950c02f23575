package logger_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/connector/internal/adapters/logger"
	"go.trai.ch/connector/internal/core/domain"
)

// captureStderr runs fn with os.Stderr redirected to a pipe and returns what was written.
func captureStderr(fn func()) (string, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	saved := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = saved }()

	read := make(chan []byte, 1)
	go func() {
		data, _ := io.ReadAll(r)
		read <- data
	}()

	fn()
	if err := w.Close(); err != nil {
		return "", err
	}
	data := <-read
	return string(data), r.Close()
}

func TestLogger_Records(t *testing.T) {
	tests := []struct {
		name  string
		log   func(lg *logger.Logger)
		level string
		text  string
	}{
		{
			name:  "debug",
			log:   func(lg *logger.Logger) { lg.Debug("probing clang") },
			level: "level=DEBUG",
			text:  `msg="probing clang"`,
		},
		{
			name:  "info",
			log:   func(lg *logger.Logger) { lg.Info("indexed /proj") },
			level: "level=INFO",
			text:  `msg="indexed /proj"`,
		},
		{
			name:  "warn",
			log:   func(lg *logger.Logger) { lg.Warn("project /proj has 200 include paths") },
			level: "level=WARN",
			text:  "200 include paths",
		},
		{
			name:  "error",
			log:   func(lg *logger.Logger) { lg.Error(os.ErrPermission) },
			level: "level=ERROR",
			text:  `error="permission denied"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(logger.NewWithWriter(&buf, domain.LogLevelDebug))

			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, tt.text)
			assert.Equal(t, 1, strings.Count(out, "\n"))
		})
	}
}

func TestNew_WritesToStderr(t *testing.T) {
	output, err := captureStderr(func() {
		// New binds os.Stderr at construction time.
		lg := logger.New()
		lg.Debug("not shown at info level")
		lg.Info("test initialization")
	})
	require.NoError(t, err)

	assert.Contains(t, output, "test initialization")
	assert.NotContains(t, output, "not shown")
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf, domain.LogLevelWarn)

	lg.Debug("hidden debug")
	lg.Info("hidden info")
	lg.Warn("shown warning")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warning")
}

func TestNewFromSettings_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "connector.log")
	settings := domain.DefaultSettings()
	settings.LogFile = path

	lg, err := logger.NewFromSettings(settings)
	require.NoError(t, err)
	lg.Info("first run")
	require.NoError(t, lg.Close())

	lg, err = logger.NewFromSettings(settings)
	require.NoError(t, err)
	lg.Info("second run")
	require.NoError(t, lg.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}

func TestNewFromSettings_BadLevel(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.LogLevel = "chatty"

	_, err := logger.NewFromSettings(settings)
	require.Error(t, err)
}
