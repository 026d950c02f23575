// Package config provides the settings loader for connector.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath overrides the settings file location.
	EnvConfigPath = "CONNECTOR_CONFIG"

	appDir          = "connector"
	settingsFile    = "config.yaml"
	cacheFile       = "cache.json"
	handoffDir      = "code_connector_vim_return"
	defaultLogLevel = "info"
)

var _ ports.SettingsLoader = (*Loader)(nil)

// Loader implements ports.SettingsLoader using a YAML file.
type Loader struct {
	Path string
}

// NewLoader creates a loader reading the settings file at path.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// DefaultPath returns $CONNECTOR_CONFIG, or config.yaml in the user config directory.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, settingsFile)
}

// Load reads the settings file. A missing file yields the defaults.
func (l *Loader) Load() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if l.Path != "" {
		data, err := os.ReadFile(l.Path) //nolint:gosec // path is provided by user
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to read settings file"), "path", l.Path)
		default:
			if err := Decode(data, &settings); err != nil {
				return domain.Settings{}, zerr.With(err, "path", l.Path)
			}
		}
	}

	applyPathDefaults(&settings)

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// Decode overlays the YAML document in data onto settings. Unknown keys are rejected.
func Decode(data []byte, settings *domain.Settings) error {
	var file SettingsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(domain.ErrInvalidSettings, zerr.Wrap(err, "failed to parse settings file"))
	}
	return file.apply(settings)
}

func (f *SettingsFile) apply(s *domain.Settings) error {
	setString(&s.Compiler, f.Compiler)
	setString(&s.Indexer, f.Indexer)
	setString(&s.MarkerFile, f.MarkerFile)
	setString(&s.FlagsFile, f.FlagsFile)
	setString(&s.CacheFile, f.CacheFile)
	setString(&s.HandoffDir, f.HandoffDir)
	setString(&s.LogFile, f.LogFile)
	setString(&s.LogLevel, f.LogLevel)
	if f.MaxIncludePaths != nil {
		s.MaxIncludePaths = *f.MaxIncludePaths
	}

	durations := []struct {
		key string
		raw *string
		dst *time.Duration
	}{
		{"probe_timeout", f.ProbeTimeout, &s.ProbeTimeout},
		{"complete_timeout", f.CompleteTimeout, &s.CompleteTimeout},
		{"index_timeout", f.IndexTimeout, &s.IndexTimeout},
		{"watch_debounce", f.WatchDebounce, &s.WatchDebounce},
	}
	for _, d := range durations {
		if d.raw == nil {
			continue
		}
		parsed, err := time.ParseDuration(*d.raw)
		if err != nil {
			err = zerr.With(zerr.Wrap(err, "invalid duration"), "setting", d.key)
			return errors.Join(domain.ErrInvalidSettings, err)
		}
		*d.dst = parsed
	}
	return nil
}

func setString(dst, src *string) {
	if src != nil {
		*dst = *src
	}
}

// applyPathDefaults fills the platform-dependent locations left empty.
func applyPathDefaults(s *domain.Settings) {
	if s.CacheFile == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			s.CacheFile = filepath.Join(dir, appDir, cacheFile)
		}
	}
	if s.HandoffDir == "" {
		s.HandoffDir = filepath.Join(os.TempDir(), handoffDir)
	}
	if s.LogLevel == "" {
		s.LogLevel = defaultLogLevel
	}
}
