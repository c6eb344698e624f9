// Package logging provides logger construction for BUILDTRACK.
//
// Components receive an injected zerolog.Logger rather than reaching for a
// process-wide singleton; this package builds the root logger the CLI hands
// out. File output rotates via lumberjack so long-lived host processes never
// fill a disk with observer diagnostics.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/buildtrack/internal/config"
	"github.com/mrz1836/buildtrack/internal/constants"
	"github.com/mrz1836/buildtrack/internal/errors"
)

// New builds the root logger from the logging configuration.
// quiet suppresses console output regardless of cfg.Console; file output is
// unaffected. When no sink is configured the logger writes to io.Discard.
//
// Returns a wrapped ErrInvalidLogLevel when cfg.Level is unrecognized.
func New(cfg config.LoggingConfig, quiet bool) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		return zerolog.Nop(), errors.Wrapf(errors.ErrInvalidLogLevel, "level %q", cfg.Level)
	}

	var writers []io.Writer
	if cfg.Console && !quiet {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", constants.AppName).
		Logger()
	return logger, nil
}
