// Package logging provides structured logging for the RAPTR optimization
// service.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	// DebugLevel logs are voluminous and usually disabled in production.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info but need no individual
	// human review.
	WarnLevel
	// ErrorLevel logs are high-priority; a healthy service emits none.
	ErrorLevel
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel
)

// String returns the wire name of the level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "INFO"
	}
}

// Logger writes structured JSON log entries.
type Logger struct {
	level  Level
	output io.Writer
	fields map[string]interface{}
	exit   func(int)
}

// New creates a Logger writing entries at or above level to output.
func New(level Level, output io.Writer) *Logger {
	return &Logger{
		level:  level,
		output: output,
		fields: map[string]interface{}{},
		exit:   os.Exit,
	}
}

// WithFields returns a child logger carrying the extra fields on every
// entry.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{
		level:  l.level,
		output: l.output,
		fields: merged,
		exit:   l.exit,
	}
}

// WithField returns a child logger carrying one extra field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithError returns a child logger with the error field set.
func (l *Logger) WithError(err error) *Logger {
	return l.WithField("error", err.Error())
}

func (l *Logger) enabled(level Level) bool {
	return level >= l.level
}

func (l *Logger) log(level Level, msg string, fields map[string]interface{}) {
	if !l.enabled(level) {
		return
	}

	entry := make(map[string]interface{}, len(l.fields)+len(fields)+3)
	for k, v := range l.fields {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["message"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		// Fall back to plain text rather than dropping the entry
		fmt.Fprintf(l.output, "%s [%s] %s: %+v\n",
			time.Now().UTC().Format(time.RFC3339), level, msg, fields)
	} else {
		data = append(data, '\n')
		_, _ = l.output.Write(data)
	}

	if level == FatalLevel {
		l.exit(1)
	}
}

func first(fields []map[string]interface{}) map[string]interface{} {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}

// Debug logs a message at DebugLevel.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(DebugLevel, msg, first(fields))
}

// Info logs a message at InfoLevel.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(InfoLevel, msg, first(fields))
}

// Warn logs a message at WarnLevel.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(WarnLevel, msg, first(fields))
}

// Error logs a message at ErrorLevel.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(ErrorLevel, msg, first(fields))
}

// Fatal logs a message at FatalLevel then calls os.Exit(1).
func (l *Logger) Fatal(msg string, fields ...map[string]interface{}) {
	l.log(FatalLevel, msg, first(fields))
}

type ctxLoggerKey struct{}

// CtxLogger is a logger that travels inside a context.
type CtxLogger struct {
	*Logger
}

// FromContext returns the logger stored in ctx, or a default stderr
// logger when none exists.
func FromContext(ctx context.Context) *CtxLogger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*CtxLogger); ok {
		return logger
	}
	return &CtxLogger{New(InfoLevel, os.Stderr)}
}

// WithContext returns a new context carrying the logger.
func (l *CtxLogger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, l)
}
