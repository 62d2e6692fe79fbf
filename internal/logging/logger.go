// Package logging provides structured logging for the SemiProcess server.
//
// The logger supports leveled output (DEBUG, INFO, WARN, ERROR, FATAL),
// named component loggers, and structured key-value fields:
//
//	logging.Initialize("info")
//	logger := logging.GetLogger("mcp")
//	logger.Info("server started on %s", addr)
//	logger.InfoWithFields("tool call finished",
//	    logging.Field("tool", name),
//	    logging.Field("duration_ms", elapsed.Milliseconds()),
//	)
//
// DEBUG/INFO/WARN go to stdout, ERROR/FATAL to stderr. When the server runs
// on the stdio transport all output is forced to stderr so log lines never
// interleave with protocol messages on stdout.
//
// Logger instances are immutable; WithField and WithName return copies, so
// loggers are safe to share across concurrent tool handlers.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the logging level.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// LogField is a structured logging field.
type LogField struct {
	Key   string
	Value interface{}
}

// Field creates a structured logging field.
func Field(key string, value interface{}) LogField {
	return LogField{Key: key, Value: value}
}

// Logger writes leveled, optionally structured log lines.
type Logger struct {
	level  LogLevel
	name   string
	fields map[string]interface{}
}

var (
	globalLevel = INFO
	initOnce    sync.Once
	mu          sync.RWMutex
	// exitFunc is called by Fatal. Overridable for tests.
	exitFunc = os.Exit
)

// ParseLevel converts a level string to a LogLevel.
func ParseLevel(levelStr string) (LogLevel, error) {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return -1, fmt.Errorf("invalid log level: %s (must be debug, info, warn, error, or fatal)", levelStr)
	}
}

// Initialize sets the global default level. Unknown levels fall back to INFO.
func Initialize(levelStr string) error {
	level, err := ParseLevel(levelStr)
	if err != nil {
		level = INFO
	}
	mu.Lock()
	globalLevel = level
	mu.Unlock()
	return err
}

// GetLogger returns a logger named after a component (e.g. "mcp", "parse").
func GetLogger(name string) *Logger {
	initOnce.Do(func() {
		if env := os.Getenv("LOG_LEVEL"); env != "" {
			_ = Initialize(env)
		}
	})
	mu.RLock()
	level := globalLevel
	mu.RUnlock()
	return &Logger{
		level:  level,
		name:   name,
		fields: make(map[string]interface{}),
	}
}

func (l *Logger) shouldLog(level LogLevel) bool {
	return level >= l.level
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.shouldLog(DEBUG) {
		l.logf("DEBUG", msg, args...)
	}
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.shouldLog(INFO) {
		l.logf("INFO", msg, args...)
	}
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.shouldLog(WARN) {
		l.logf("WARN", msg, args...)
	}
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) {
	if l.shouldLog(ERROR) {
		l.logf("ERROR", msg, args...)
	}
}

// ErrorWithErr logs an error message with an error object appended.
func (l *Logger) ErrorWithErr(msg string, err error, args ...interface{}) {
	if l.shouldLog(ERROR) {
		args = append(args, err)
		l.logf("ERROR", msg+" - %v", args...)
	}
}

// Fatal logs a fatal message and exits the program with code 1.
func (l *Logger) Fatal(msg string, args ...interface{}) {
	if l.shouldLog(FATAL) {
		l.logf("FATAL", msg, args...)
		exitFunc(1)
	}
}

// WithName returns a copy of the logger with a different component name.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{level: l.level, name: name, fields: cloneFields(l.fields)}
}

// WithField returns a copy of the logger carrying an extra persistent field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := &Logger{level: l.level, name: l.name, fields: cloneFields(l.fields)}
	clone.fields[key] = value
	return clone
}

// DebugWithFields logs a debug message with structured fields.
func (l *Logger) DebugWithFields(msg string, fields ...LogField) {
	if l.shouldLog(DEBUG) {
		l.logWithFields("DEBUG", msg, fields...)
	}
}

// InfoWithFields logs an info message with structured fields.
func (l *Logger) InfoWithFields(msg string, fields ...LogField) {
	if l.shouldLog(INFO) {
		l.logWithFields("INFO", msg, fields...)
	}
}

// WarnWithFields logs a warning message with structured fields.
func (l *Logger) WarnWithFields(msg string, fields ...LogField) {
	if l.shouldLog(WARN) {
		l.logWithFields("WARN", msg, fields...)
	}
}

// ErrorWithFields logs an error message with structured fields.
func (l *Logger) ErrorWithFields(msg string, fields ...LogField) {
	if l.shouldLog(ERROR) {
		l.logWithFields("ERROR", msg, fields...)
	}
}

func (l *Logger) logWithFields(level, msg string, fields ...LogField) {
	merged := cloneFields(l.fields)
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	l.writeLog(level, msg, merged)
}

func (l *Logger) logf(level, msg string, args ...interface{}) {
	l.writeLog(level, fmt.Sprintf(msg, args...), l.fields)
}

func cloneFields(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
