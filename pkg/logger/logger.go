// Package logger constructs the application's zerolog loggers.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls the logger's level and destination.
type Config struct {
	Level  string
	Pretty bool
	// File receives the log stream when set. The dashboard owns the
	// terminal while it runs, so interactive sessions must not write to
	// stdout or stderr.
	File string
}

// New builds a logger from cfg. Unknown levels fall back to info. When a
// file is requested but cannot be opened, the stream is discarded rather
// than corrupting the terminal.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	switch {
	case cfg.File != "":
		f, ferr := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if ferr != nil {
			out = io.Discard
		} else {
			out = f
		}
	case cfg.Pretty:
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
