// Package logging provides structured logging for Rulebook.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// LogLevel represents a log level.
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

var levelRank = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Fields carries structured context for a log entry.
type Fields map[string]interface{}

// Logger provides structured JSON logging.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel LogLevel
}

var (
	// global logger instance
	global *Logger
	once   sync.Once
)

// Init initializes the global logger. The first call wins; later calls
// are ignored.
func Init(out io.Writer, minLevel LogLevel) {
	once.Do(func() {
		global = &Logger{
			out:      out,
			minLevel: minLevel,
		}
	})
}

// Get returns the global logger instance.
func Get() *Logger {
	if global == nil {
		Init(os.Stdout, LevelInfo)
	}
	return global
}

// logEntry is the serialized form of a single log line.
type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	Context   Fields `json:"context,omitempty"`
}

// log writes a log entry at the specified level.
func (l *Logger) log(level LogLevel, message string, err error, fields Fields) {
	if levelRank[level] < levelRank[l.minLevel] {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Context:   fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		log.Printf("Failed to marshal log entry: %v\n", jsonErr)
		return
	}

	fmt.Fprintln(l.out, string(data))
}

// Debug logs a debug message.
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, mergeFields(fields))
}

// Info logs an info message.
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, mergeFields(fields))
}

// Warn logs a warning message.
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, mergeFields(fields))
}

// Error logs an error message.
func (l *Logger) Error(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, mergeFields(fields))
}

// mergeFields flattens variadic field maps into one.
func mergeFields(fields []Fields) Fields {
	if len(fields) == 0 {
		return nil
	}
	if len(fields) == 1 {
		return fields[0]
	}
	merged := make(Fields)
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	return merged
}

// ParseLevel maps a config string to a LogLevel, defaulting to info.
func ParseLevel(s string) LogLevel {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Convenience functions using the global logger

func Debug(message string, fields ...Fields) {
	Get().Debug(message, fields...)
}

func Info(message string, fields ...Fields) {
	Get().Info(message, fields...)
}

func Warn(message string, fields ...Fields) {
	Get().Warn(message, fields...)
}

func Error(message string, err error, fields ...Fields) {
	Get().Error(message, err, fields...)
}
