package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/connector/internal/adapters/config"
	"go.trai.ch/connector/internal/core/domain"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load_MissingFileUsesDefaults(t *testing.T) {
	loader := config.NewLoader(filepath.Join(t.TempDir(), "absent.yaml"))

	settings, err := loader.Load()

	require.NoError(t, err)
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Compiler, settings.Compiler)
	assert.Equal(t, defaults.MaxIncludePaths, settings.MaxIncludePaths)
	assert.Equal(t, defaults.ProbeTimeout, settings.ProbeTimeout)
	assert.NotEmpty(t, settings.HandoffDir)
	assert.Equal(t, "info", settings.LogLevel)
}

func TestLoader_Load_Overrides(t *testing.T) {
	path := writeSettings(t, `
compiler: clang-17
indexer: /opt/ccls/bin/ccls
max_include_paths: 64
probe_timeout: 2s
complete_timeout: 1m
watch_debounce: 250ms
cache_file: /var/tmp/connector-cache.json
handoff_dir: /var/tmp/handoff
log_file: /var/tmp/connector.log
log_level: debug
`)

	settings, err := config.NewLoader(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "clang-17", settings.Compiler)
	assert.Equal(t, "/opt/ccls/bin/ccls", settings.Indexer)
	assert.Equal(t, ".ccls", settings.MarkerFile)
	assert.Equal(t, 64, settings.MaxIncludePaths)
	assert.Equal(t, 2*time.Second, settings.ProbeTimeout)
	assert.Equal(t, time.Minute, settings.CompleteTimeout)
	assert.Equal(t, 10*time.Minute, settings.IndexTimeout)
	assert.Equal(t, 250*time.Millisecond, settings.WatchDebounce)
	assert.Equal(t, "/var/tmp/connector-cache.json", settings.CacheFile)
	assert.Equal(t, "/var/tmp/handoff", settings.HandoffDir)
	assert.Equal(t, "/var/tmp/connector.log", settings.LogFile)
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestLoader_Load_EmptyFile(t *testing.T) {
	settings, err := config.NewLoader(writeSettings(t, "")).Load()

	require.NoError(t, err)
	assert.Equal(t, "clang", settings.Compiler)
}

func TestLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "compilr: clang\n"},
		{"bad duration", "probe_timeout: soon\n"},
		{"negative limit", "max_include_paths: -1\n"},
		{"unknown level", "log_level: chatty\n"},
		{"malformed yaml", "compiler: [clang\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.NewLoader(writeSettings(t, tt.content)).Load()

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidSettings)
		})
	}
}

func TestDefaultPath_Env(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "/etc/connector.yaml")

	assert.Equal(t, "/etc/connector.yaml", config.DefaultPath())
}
