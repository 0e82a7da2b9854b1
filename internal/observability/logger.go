// Package observability provides the shared structured logger.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog so callers do not depend on the library directly.
type Logger struct {
	zl zerolog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level   string // debug, info, warn, error
	Format  string // json or console
	Output  io.Writer
	Service string
}

// New creates a logger. Console format is used by the CLI shells, json by
// the web server.
func New(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	var zl zerolog.Logger
	if cfg.Format == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	} else {
		zl = zerolog.New(out)
	}
	ctx := zl.Level(parseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	return Logger{zl: ctx.Logger()}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return Logger{zl: zerolog.Nop()}
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug starts a debug-level event.
func (l Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Info starts an info-level event.
func (l Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn starts a warn-level event.
func (l Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error starts an error-level event.
func (l Logger) Error() *zerolog.Event { return l.zl.Error() }
