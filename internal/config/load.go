package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/buildtrack/internal/constants"
)

// newViperInstance creates a new Viper instance with standard BUILDTRACK
// configuration: environment variable prefix (BUILDTRACK_), key replacer,
// and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not
// found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from the given file path plus environment
// variables, with environment taking precedence over the file and the file
// over built-in defaults. An empty path skips the file layer entirely.
//
// Observation must never abort the host run over a configuration problem, so
// Load never returns an error: a missing, unreadable, or malformed file is
// logged and the built-in defaults are used instead.
func Load(ctx context.Context, path string) *Config {
	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()

	v := newViperInstance()

	if path != "" {
		if err := readConfigFile(v, path); err != nil {
			logger.Warn().Err(err).Str("path", path).
				Msg("config file unusable, falling back to defaults")
			v = newViperInstance()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		logger.Warn().Err(err).
			Msg("config unmarshal failed, falling back to defaults")
		return DefaultConfig()
	}

	cfg.EnabledForTasksWithName = pruneBlank(cfg.EnabledForTasksWithName)
	cfg.DisabledForTasksWithName = pruneBlank(cfg.DisabledForTasksWithName)

	logger.Debug().
		Bool("disabled", cfg.Disabled).
		Str("output_home_path", cfg.OutputHomePath).
		Strs("enabled_for_tasks_with_name", cfg.EnabledForTasksWithName).
		Strs("disabled_for_tasks_with_name", cfg.DisabledForTasksWithName).
		Msg("configuration loaded")

	return &cfg
}

// readConfigFile loads the file at path into the Viper instance.
// Returns an error for any problem other than the file simply not existing.
func readConfigFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		// Missing config files are expected in many scenarios.
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return err
	}
	return nil
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// This configures mapstructure to split comma-separated suffix lists, which
// is how the flat properties-style keys express multiple values.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}

// pruneBlank removes blank (empty or whitespace-only) entries from a suffix
// list, trimming the survivors. Blank filter entries must not match anything.
func pruneBlank(entries []string) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		trimmed := strings.TrimSpace(e)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
