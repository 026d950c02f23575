package domain

import (
	"errors"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultCompiler is the compiler used for target probing and completion.
	DefaultCompiler = "clang"
	// DefaultIndexer is the indexer used to build the navigation index.
	DefaultIndexer = "ccls"
	// DefaultMarkerFile is the project marker file name.
	DefaultMarkerFile = ".ccls"
	// DefaultFlagsFile is the compile flags file name.
	DefaultFlagsFile = "compile_flags.txt"
	// DefaultMaxIncludePaths bounds the include paths kept by the completion cache.
	DefaultMaxIncludePaths = 128
	// MaxCandidates bounds the flag lines collected by one extraction.
	MaxCandidates = 10000
)

// Settings holds the user-tunable knobs of the tool.
type Settings struct {
	Compiler        string        `yaml:"compiler"`
	Indexer         string        `yaml:"indexer"`
	MarkerFile      string        `yaml:"marker_file"`
	FlagsFile       string        `yaml:"flags_file"`
	MaxIncludePaths int           `yaml:"max_include_paths"`
	ProbeTimeout    time.Duration `yaml:"probe_timeout"`
	CompleteTimeout time.Duration `yaml:"complete_timeout"`
	IndexTimeout    time.Duration `yaml:"index_timeout"`
	WatchDebounce   time.Duration `yaml:"watch_debounce"`
	CacheFile       string        `yaml:"cache_file"`
	HandoffDir      string        `yaml:"handoff_dir"`
	LogFile         string        `yaml:"log_file"`
	LogLevel        string        `yaml:"log_level"`
}

// DefaultSettings returns the settings used when no settings file exists.
// Path-valued fields are left empty; the config adapter fills them per platform.
func DefaultSettings() Settings {
	return Settings{
		Compiler:        DefaultCompiler,
		Indexer:         DefaultIndexer,
		MarkerFile:      DefaultMarkerFile,
		FlagsFile:       DefaultFlagsFile,
		MaxIncludePaths: DefaultMaxIncludePaths,
		ProbeTimeout:    10 * time.Second,
		CompleteTimeout: 30 * time.Second,
		IndexTimeout:    10 * time.Minute,
		WatchDebounce:   500 * time.Millisecond,
		LogLevel:        "info",
	}
}

// Validate rejects settings the tool cannot work with.
func (s Settings) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Compiler) == "" {
		errs = append(errs, zerr.New("compiler must not be empty"))
	}
	if strings.TrimSpace(s.Indexer) == "" {
		errs = append(errs, zerr.New("indexer must not be empty"))
	}
	if s.MarkerFile == "" || s.FlagsFile == "" {
		errs = append(errs, zerr.New("marker_file and flags_file must not be empty"))
	}
	if s.MarkerFile == s.FlagsFile {
		errs = append(errs, zerr.With(zerr.New("marker_file and flags_file must differ"), "name", s.MarkerFile))
	}
	if s.MaxIncludePaths < 1 {
		errs = append(errs, zerr.With(zerr.New("max_include_paths must be positive"), "value", s.MaxIncludePaths))
	}
	for name, d := range map[string]time.Duration{
		"probe_timeout":    s.ProbeTimeout,
		"complete_timeout": s.CompleteTimeout,
		"index_timeout":    s.IndexTimeout,
	} {
		if d <= 0 {
			errs = append(errs, zerr.With(zerr.New("timeout must be positive"), "setting", name))
		}
	}
	if s.WatchDebounce < 0 {
		errs = append(errs, zerr.New("watch_debounce must not be negative"))
	}
	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidSettings}, errs...)...)
}

const (
	// DefaultMarkerContent is written to a new project marker file.
	DefaultMarkerContent = "clang\n%c -std=c11\n%cpp -std=c++17\n"
	// DefaultFlagsContent is written to a new compile flags file.
	DefaultFlagsContent = "-I.\n-I..\n-I/usr/include\n-I/usr/local/include\n"
)
