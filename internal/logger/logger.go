// Package logger builds the zerolog loggers used across finetl and carries
// them through context.Context.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ContextKey is the type for context keys used by the logger.
type ContextKey string

// LoggerKey is the context key for the logger instance.
const LoggerKey ContextKey = "logger"

// Options selects the logger's level and output.
type Options struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string
	// Format is "console" (human readable) or "json".
	Format string
	// Out defaults to os.Stderr.
	Out io.Writer
}

// New builds a logger from opts.
func New(opts Options) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if s := strings.TrimSpace(opts.Level); s != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(s))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logger: %w", err)
		}
		lvl = l
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(opts.Format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("logger: unknown format %q", opts.Format)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// NewWithWriter creates a JSON logger at debug level writing to w.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// WithContext adds the logger to the context.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, l)
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}
