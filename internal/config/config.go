// Package config provides configuration management for BUILDTRACK.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (BUILDTRACK_* prefix)
//  2. Config file (YAML, path supplied by the host or CLI)
//  3. Built-in defaults
//
// A missing, unreadable, or malformed config file falls back to all-defaults.
// Configuration problems must never abort the observed build, so Load degrades
// rather than failing.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

// Config is the root configuration structure for BUILDTRACK.
// It is loaded once per run, immutable afterwards, and shared read-only by
// the gate, coordinator, and report writer.
type Config struct {
	// Disabled turns observation off for the whole run regardless of any
	// task-name filters.
	// Default: false
	Disabled bool `yaml:"disabled" mapstructure:"disabled"`

	// OutputHomePath is the directory where report files are written.
	// Default: the host-provided reports directory.
	OutputHomePath string `yaml:"output_home_path" mapstructure:"output_home_path"`

	// EnabledForTasksWithName restricts observation to runs that request at
	// least one task whose name ends with one of these suffixes
	// (case-insensitive). When non-empty this filter fully overrides
	// DisabledForTasksWithName. Accepts a comma-separated string in the
	// config file; blank entries are ignored.
	EnabledForTasksWithName []string `yaml:"enabled_for_tasks_with_name" mapstructure:"enabled_for_tasks_with_name"`

	// DisabledForTasksWithName suppresses observation for runs where any
	// requested task name ends with one of these suffixes (case-insensitive).
	// Ignored whenever EnabledForTasksWithName is non-empty.
	DisabledForTasksWithName []string `yaml:"disabled_for_tasks_with_name" mapstructure:"disabled_for_tasks_with_name"`

	// Logging contains settings for BUILDTRACK's own diagnostic log output.
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// LoggingConfig contains settings for diagnostic logging.
// These control BUILDTRACK's own log output, not the report artifact.
type LoggingConfig struct {
	// Level is the minimum zerolog level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level" mapstructure:"level"`

	// File is the path of the rotating log file. Empty disables file logging.
	File string `yaml:"file" mapstructure:"file"`

	// Console enables human-readable console output on stderr.
	// Default: true
	Console bool `yaml:"console" mapstructure:"console"`

	// MaxSizeMB is the maximum size of the log file before rotation.
	// Default: 10
	MaxSizeMB int `yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated log files to retain.
	// Default: 3
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups"`
}
