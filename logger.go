package arenacodec

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hupe1980/arenacodec/persistence"
)

// Logger is the structured logger used by Store. Every record about a unit
// carries the "unit" attribute.
type Logger struct {
	*slog.Logger
}

// NewLogger returns a Logger over handler, or an info-level text logger on
// stderr when handler is nil.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		return NewTextLogger(slog.LevelInfo)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger returns a Logger writing JSON records at or above level to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger returns a Logger writing logfmt records at or above level to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger returns a Logger that drops every record.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(1 << 10)}))
}

// WithUnit returns a child Logger bound to one unit.
func (l *Logger) WithUnit(name string) *Logger {
	return &Logger{Logger: l.With("unit", name)}
}

// LogSave logs a unit save.
func (l *Logger) LogSave(ctx context.Context, name string, h persistence.UnitHeader, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"unit", name,
			"format", h.Format.String(),
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "save completed",
		"unit", name,
		"format", h.Format.String(),
		"compression", h.Compression.String(),
		"raw", humanize.IBytes(h.RawSize),
		"stored", humanize.IBytes(h.PayloadSize+persistence.HeaderSize),
		"duration", duration,
	)
}

// LogLoad logs a unit load. zeroCopy reports whether the payload was used in place.
func (l *Logger) LogLoad(ctx context.Context, name string, h persistence.UnitHeader, zeroCopy bool, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"unit", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "load completed",
		"unit", name,
		"format", h.Format.String(),
		"compression", h.Compression.String(),
		"raw", humanize.IBytes(h.RawSize),
		"zero_copy", zeroCopy,
		"duration", duration,
	)
}

// LogDelete logs a unit delete.
func (l *Logger) LogDelete(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"unit", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "delete completed",
		"unit", name,
	)
}
