// Package logging builds the slog.Logger used by the lifecycle CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs.
	FormatText Format = "text"
)

// Option configures logger creation.
type Option func(*config)

type config struct {
	level  slog.Level
	format Format
	output io.Writer
	attrs  []slog.Attr
}

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets the output format. Unknown formats fall back to text.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			c.format = FormatText
		}
	}
}

// WithOutput sets the output destination, ignoring nil writers.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// New creates a logger. Defaults: text format, info level, stderr, so that log
// lines never mix with the CLI's stdout.
func New(opts ...Option) *slog.Logger {
	c := &config{
		level:  slog.LevelInfo,
		format: FormatText,
		output: os.Stderr,
	}

	for _, opt := range opts {
		opt(c)
	}

	handlerOpts := &slog.HandlerOptions{Level: c.level}

	var h slog.Handler
	if c.format == FormatJSON {
		h = slog.NewJSONHandler(c.output, handlerOpts)
	} else {
		h = slog.NewTextHandler(c.output, handlerOpts)
	}

	if len(c.attrs) > 0 {
		h = h.WithAttrs(c.attrs)
	}

	return slog.New(h)
}

// ParseLevel converts names such as "debug" or "WARN" into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}

	return l, nil
}
