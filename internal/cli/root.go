// Package cli provides the command-line interface for buildtrack.
package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/buildtrack/internal/config"
	"github.com/mrz1836/buildtrack/internal/logging"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// GlobalFlags holds the persistent flags shared by all subcommands.
type GlobalFlags struct {
	// ConfigPath is the path to an optional configuration file.
	ConfigPath string
	// LogLevel overrides the configured diagnostic log level.
	LogLevel string
	// Quiet suppresses console log output.
	Quiet bool
}

// globalLogger stores the initialized logger for use by subcommands.
// This is set during PersistentPreRunE and should be accessed via GetLogger.
// Access is protected by globalLoggerMu for thread safety.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// IMPORTANT: This function MUST only be called after the root command's
// PersistentPreRunE has executed. Calling it before initialization will
// return a zero-value logger that discards all log output.
//
// This function is safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates and returns the root command for the buildtrack CLI.
// This function-based approach avoids package-level globals, making the
// code more testable.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildtrack",
		Short: "BUILDTRACK - build task duration tracking and reporting",
		Long: `BUILDTRACK observes the tasks executed during a build run, records each
task's path, duration, and completion status, and emits a structured YAML
report when the run concludes.

The core is driven by the host build system's task-finish notifications;
the replay command stands in for a live host by delivering a recorded
event stream.`,
		Version: formatVersion(info),
		// Run displays help when the root command is invoked without
		// subcommands, ensuring PersistentPreRunE runs for flag validation.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := initLogger(flags)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			globalLoggerMu.Lock()
			globalLogger = logger
			globalLoggerMu.Unlock()
			return nil
		},
		// SilenceUsage prevents printing usage on error
		// (we handle our own error messages)
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to configuration file")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress console log output")

	AddReplayCommand(cmd, flags)

	return cmd
}

// initLogger builds the CLI logger from defaults plus the global flags.
// Config-file logging settings are applied later by commands that load the
// config; the bootstrap logger exists so config loading itself can log.
func initLogger(flags *GlobalFlags) (zerolog.Logger, error) {
	logCfg := config.DefaultConfig().Logging
	if flags.LogLevel != "" {
		logCfg.Level = flags.LogLevel
	}
	return logging.New(logCfg, flags.Quiet)
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	return cmd.ExecuteContext(ctx)
}
