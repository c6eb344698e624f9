package config

import (
	"github.com/spf13/viper"
)

// DefaultConfig returns the built-in default configuration.
// These values match the defaults set on the Viper instance in load.go.
func DefaultConfig() *Config {
	return &Config{
		Disabled:                 false,
		OutputHomePath:           "",
		EnabledForTasksWithName:  nil,
		DisabledForTasksWithName: nil,
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			Console:    true,
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	v.SetDefault("disabled", false)
	v.SetDefault("output_home_path", "")
	v.SetDefault("enabled_for_tasks_with_name", []string{})
	v.SetDefault("disabled_for_tasks_with_name", []string{})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
}
