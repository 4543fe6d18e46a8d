package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type implLogger struct {
	logger zerolog.Logger
}

// New creates a new Logger instance. Format "console" enables the
// human-readable writer; anything else logs JSON lines.
func New(level, format string) Logger {
	var out zerolog.Logger
	if strings.ToLower(format) == "console" {
		out = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	} else {
		out = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	return &implLogger{
		logger: out.Level(parseLevel(level)),
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Debug().Msgf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Info().Msgf(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Warn().Msgf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Error().Msgf(msg, args...)
}

// FormatError renders an error for log fields, empty string for nil.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%v", err)
}
