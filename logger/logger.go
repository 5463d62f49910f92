// Package logger builds the structured logger shared by the mdr commands.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // human friendly console output
}

// New creates a new structured logger writing to stderr.
//
// Stdout is left to the reports printed by the commands.
func New(cfg Config) zerolog.Logger {
	return NewWriter(cfg, os.Stderr)
}

// NewWriter is like New with an explicit output.
func NewWriter(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
