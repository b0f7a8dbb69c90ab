package logging

import (
	"context"
	"log/slog"
)

// Attr aliases slog.Attr for package consumers.
type Attr = slog.Attr

// Value aliases slog.Value for package consumers.
type Value = slog.Value

// Attribute constructors mirrored from slog so call sites stay terse.
var (
	Any      = slog.Any
	Bool     = slog.Bool
	Duration = slog.Duration
	Float64  = slog.Float64
	Group    = slog.Group
	Int      = slog.Int
	Int64    = slog.Int64
	String   = slog.String
	Uint64   = slog.Uint64
)

// Error wraps an error into a standard attribute. Nil errors produce an
// empty attribute that slog drops.
func Error(err error) Attr {
	if err == nil {
		return Attr{}
	}
	return slog.Any("error", err)
}

// Args converts attributes into the variadic any form accepted by slog
// logging methods.
func Args(attrs ...Attr) []any {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Equal(Attr{}) {
			continue
		}
		out = append(out, attr)
	}
	return out
}

// NewNop returns a logger that discards every record. Useful default for
// tests and optional dependencies.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger tags a child logger with a component name so console
// output groups related lines.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	if component == "" {
		return logger
	}
	return logger.With(String(FieldComponent, component))
}

// NoopHandler implements slog.Handler and drops all records.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }
func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler        { return NoopHandler{} }
func (NoopHandler) WithGroup(string) slog.Handler             { return NoopHandler{} }
