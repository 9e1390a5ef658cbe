// Package logging provides zerolog construction and context helpers shared by
// the CLI and the estimation engine. Loggers travel through context.Context so
// library code never touches process-global state.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level string ("debug", "info", "warn", "error").
	// Unparseable values fall back to info.
	Level string

	// Format selects "console" (human-readable) or "json" output.
	Format string

	// Output selects "stderr", "stdout", or "file".
	Output string

	// File is the log file path when Output is "file".
	File string

	// Caller adds the caller file:line to each event.
	Caller bool
}

const (
	// FormatConsole renders events through zerolog.ConsoleWriter.
	FormatConsole = "console"

	// FormatJSON emits raw JSON events.
	FormatJSON = "json"

	outputStderr = "stderr"
	outputStdout = "stdout"
	outputFile   = "file"
)

// New builds a zerolog.Logger from cfg. When a file output cannot be opened
// the logger falls back to stderr rather than failing the command; the
// returned error reports the fallback cause so callers can warn the user.
func New(cfg Config) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer
	var openErr error
	switch cfg.Output {
	case outputStdout:
		out = os.Stdout
	case outputFile:
		f, fileErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if fileErr != nil {
			out = os.Stderr
			openErr = fileErr
		} else {
			out = f
		}
	default:
		out = os.Stderr
	}

	if cfg.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), openErr
}

// ComponentLogger returns a child logger tagged with a component field.
// Component names match package names ("cli", "engine", "geocode", ...).
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx via logger.WithContext, or a
// disabled logger when none is attached. Library code uses this instead of a
// package global so tests and embedders control log routing.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
