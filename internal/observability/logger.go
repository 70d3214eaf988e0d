// Package observability provides the engine's internal diagnostic
// logging: a small Logger interface with field-carrying methods, backed
// by the standard log package.
package observability

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Logger is the engine's internal diagnostic logging interface. It is
// distinct from cachekit.Hook: the Hook is the caller's per-operation
// event channel, Logger is the library's own "this is worth noting"
// channel for internally observed conditions.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)

	With(fields map[string]any) Logger
	WithPrefix(prefix string) Logger
}

// StandardLogger implements Logger on top of the standard log package.
type StandardLogger struct {
	prefix string
	fields map[string]any
}

// NewStandardLogger creates a StandardLogger with the given prefix.
func NewStandardLogger(prefix string) *StandardLogger {
	return &StandardLogger{prefix: prefix}
}

func (l *StandardLogger) Debug(msg string, fields map[string]any) { l.log("DEBUG", msg, fields) }
func (l *StandardLogger) Info(msg string, fields map[string]any)  { l.log("INFO", msg, fields) }
func (l *StandardLogger) Warn(msg string, fields map[string]any)  { l.log("WARN", msg, fields) }
func (l *StandardLogger) Error(msg string, fields map[string]any) { l.log("ERROR", msg, fields) }

func (l *StandardLogger) With(fields map[string]any) Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &StandardLogger{prefix: l.prefix, fields: merged}
}

func (l *StandardLogger) WithPrefix(prefix string) Logger {
	return &StandardLogger{prefix: prefix, fields: l.fields}
}

func (l *StandardLogger) log(level, msg string, fields map[string]any) {
	timestamp := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	out := fmt.Sprintf("%s [%s] [%s] %s%s", timestamp, level, l.prefix, msg, formatFields(l.fields, fields))
	log.New(os.Stderr, "", 0).Println(out)
}

func formatFields(base, extra map[string]any) string {
	if len(base) == 0 && len(extra) == 0 {
		return ""
	}
	s := ""
	for k, v := range base {
		s += fmt.Sprintf(" %s=%v", k, v)
	}
	for k, v := range extra {
		s += fmt.Sprintf(" %s=%v", k, v)
	}
	return s
}

// NoopLogger discards everything. Used as the default when no Logger is
// configured.
type NoopLogger struct{}

func NewNoopLogger() Logger { return NoopLogger{} }

func (NoopLogger) Debug(string, map[string]any) {}
func (NoopLogger) Info(string, map[string]any)  {}
func (NoopLogger) Warn(string, map[string]any)  {}
func (NoopLogger) Error(string, map[string]any) {}
func (NoopLogger) With(map[string]any) Logger   { return NoopLogger{} }
func (NoopLogger) WithPrefix(string) Logger      { return NoopLogger{} }
