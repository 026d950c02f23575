package config

// SettingsFile represents the structure of the config.yaml settings file.
// Absent keys keep their default value.
type SettingsFile struct {
	Compiler        *string `yaml:"compiler"`
	Indexer         *string `yaml:"indexer"`
	MarkerFile      *string `yaml:"marker_file"`
	FlagsFile       *string `yaml:"flags_file"`
	MaxIncludePaths *int    `yaml:"max_include_paths"`
	ProbeTimeout    *string `yaml:"probe_timeout"`
	CompleteTimeout *string `yaml:"complete_timeout"`
	IndexTimeout    *string `yaml:"index_timeout"`
	WatchDebounce   *string `yaml:"watch_debounce"`
	CacheFile       *string `yaml:"cache_file"`
	HandoffDir      *string `yaml:"handoff_dir"`
	LogFile         *string `yaml:"log_file"`
	LogLevel        *string `yaml:"log_level"`
}
