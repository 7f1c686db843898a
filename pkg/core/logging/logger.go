// ============================================================================
// meinTRANSKRIPTARCHIV (mTA) - Lokales Transkriptionsarchiv
// ============================================================================
//
// Package:     logging
// Description: Structured logger with named sub-loggers and key-value fields
// Author:      Mike Stoffels with Claude
// Created:     2026-08-14
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"sync"
	"time"
)

// Fields holds contextual key-value pairs for a log entry
type Fields map[string]interface{}

// Logger is a leveled, named logger writing formatted entries to an output
type Logger struct {
	name   string
	level  Level
	format Format
	output io.Writer

	// contextFields are added to every entry emitted by this logger
	contextFields Fields

	mu *sync.Mutex
}

// Config holds logger configuration
type Config struct {
	Name   string
	Level  Level
	Format Format
	Output io.Writer
}

var (
	defaultsMu    sync.RWMutex
	defaultLevel  = DefaultLevel()
	defaultFormat = FormatText
)

// SetDefaults sets the level and format for loggers created afterwards.
// Already created loggers keep their configuration.
func SetDefaults(cfg Config) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultLevel = cfg.Level
	defaultFormat = cfg.Format
}

// New creates a named logger with the package default configuration
func New(name string) *Logger {
	defaultsMu.RLock()
	level, format := defaultLevel, defaultFormat
	defaultsMu.RUnlock()
	return NewWithConfig(Config{Name: name, Level: level, Format: format})
}

// NewWithConfig creates a logger with the specified configuration
func NewWithConfig(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	return &Logger{
		name:          cfg.Name,
		level:         cfg.Level,
		format:        cfg.Format,
		output:        output,
		contextFields: make(Fields),
		mu:            &sync.Mutex{},
	}
}

// WithLevel returns a copy of the logger with the given minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// WithFormat returns a copy of the logger with the given output format
func (l *Logger) WithFormat(format Format) *Logger {
	clone := l.clone()
	clone.format = format
	return clone
}

// WithOutput returns a copy of the logger writing to the given output
func (l *Logger) WithOutput(output io.Writer) *Logger {
	clone := l.clone()
	clone.output = output
	return clone
}

// WithFields returns a copy of the logger that adds the given fields to
// every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// clone copies the logger; the output mutex is shared so cloned loggers
// never interleave writes
func (l *Logger) clone() *Logger {
	fields := make(Fields, len(l.contextFields))
	for k, v := range l.contextFields {
		fields[k] = v
	}
	return &Logger{
		name:          l.name,
		level:         l.level,
		format:        l.format,
		output:        l.output,
		contextFields: fields,
		mu:            l.mu,
	}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LevelDebug, msg, keysAndValues...)
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LevelInfo, msg, keysAndValues...)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LevelWarn, msg, keysAndValues...)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LevelError, msg, keysAndValues...)
}

func (l *Logger) log(level Level, msg string, keysAndValues ...interface{}) {
	if level < l.level {
		return
	}

	fields := make(Fields, len(l.contextFields))
	for k, v := range l.contextFields {
		fields[k] = v
	}
	for k, v := range toFields(keysAndValues...) {
		fields[k] = v
	}

	entry := &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Logger:    l.name,
		Message:   msg,
		Fields:    fields,
	}

	data := formatEntry(entry, l.format)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write(data)
}

// toFields converts key-value pairs to Fields; non-string keys and a
// trailing orphan value are skipped
func toFields(keysAndValues ...interface{}) Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
