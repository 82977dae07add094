// Package logging configures the zerolog logger the engine uses for
// diagnostics. Reporter output (the user-facing stdout lines) never
// goes through here.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the sinks and level for a logger.
type Options struct {
	// Level is a zerolog level name ("debug", "info", ...).
	Level string
	// File, when non-empty, adds a rotating file sink at that path.
	File string
	// FileMaxSizeMB bounds each rotated file. Zero means 16.
	FileMaxSizeMB int
}

// New builds a console logger on stderr, optionally teeing into a
// rotating file.
func New(opts Options) zerolog.Logger {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	var w io.Writer = console
	if opts.File != "" {
		maxSize := opts.FileMaxSizeMB
		if maxSize == 0 {
			maxSize = 16
		}
		w = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: 8,
			MaxAge:     30,
		})
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Nop returns a disabled logger for tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// Elapsed runs fn and logs its wall-clock duration under label. It is
// the tracing hook wrapped around the heavy pipeline stages.
func Elapsed[T any](log zerolog.Logger, label string, fn func() T) T {
	start := time.Now()
	out := fn()
	log.Debug().Str("stage", label).Dur("took", time.Since(start)).Msg("stage complete")
	return out
}

// Elapsed2 is Elapsed for stages returning a (value, error) pair.
func Elapsed2[T, U any](log zerolog.Logger, label string, fn func() (T, U)) (T, U) {
	start := time.Now()
	a, b := fn()
	log.Debug().Str("stage", label).Dur("took", time.Since(start)).Msg("stage complete")
	return a, b
}
