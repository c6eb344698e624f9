package logging

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/buildtrack/internal/config"
	"github.com/mrz1836/buildtrack/internal/errors"
)

// TestNew_ValidLevels verifies logger construction across supported levels.
func TestNew_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(config.LoggingConfig{Level: tt.level}, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

// TestNew_InvalidLevel verifies unknown and empty levels are rejected.
func TestNew_InvalidLevel(t *testing.T) {
	for _, level := range []string{"", "verbose", "LOUD"} {
		t.Run("level "+level, func(t *testing.T) {
			_, err := New(config.LoggingConfig{Level: level}, false)
			require.ErrorIs(t, err, errors.ErrInvalidLogLevel)
		})
	}
}

// TestNew_FileSink verifies a file sink can be configured alongside quiet
// console suppression.
func TestNew_FileSink(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "buildtrack.log")

	logger, err := New(config.LoggingConfig{
		Level:      "info",
		Console:    true,
		File:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 1,
	}, true)
	require.NoError(t, err)

	logger.Info().Msg("sink check")
	assert.FileExists(t, logFile)
}
