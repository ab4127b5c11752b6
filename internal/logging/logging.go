// Package logging constructs the zerolog loggers used by the CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config contains logger configuration.
type Config struct {
	// Level sets the logging level (debug, info, warn, error).
	Level string
	// Output sets the output writer (defaults to os.Stderr, keeping the
	// report stream on stdout clean).
	Output io.Writer
}

// New creates a console logger with the given configuration.
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	console := zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: "15:04:05",
	}

	return zerolog.New(console).
		Level(level).
		With().
		Timestamp().
		Logger()
}
