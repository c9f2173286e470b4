/*-------------------------------------------------------------------------
 *
 * PahVenture MSSQL MCP Server
 *
 * Copyright (c) 2026, PahVenture
 * This software is released under the MIT License
 *
 *-------------------------------------------------------------------------
 */

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Environment variable to control log level
const envLogLevel = "MSSQL_MCP_LOG_LEVEL"

var (
	mu sync.Mutex

	// currentLevel is the minimum log level to output. Info matches the
	// verbosity of the reference server; stdout is reserved for the JSON-RPC
	// stream, so all logging goes to stderr.
	currentLevel = LevelInfo

	out io.Writer = os.Stderr
)

func init() {
	if level := os.Getenv(envLogLevel); level != "" {
		switch strings.ToLower(level) {
		case "debug":
			currentLevel = LevelDebug
		case "info":
			currentLevel = LevelInfo
		case "warn", "warning":
			currentLevel = LevelWarn
		case "error":
			currentLevel = LevelError
		}
	}
}

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// logEntry represents a structured log entry
type logEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// write emits a structured log message if the level is enabled
func write(level LogLevel, message string, keyvals ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if level < currentLevel {
		return
	}

	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
	}

	if len(keyvals) > 0 {
		entry.Fields = make(map[string]interface{}, len(keyvals)/2)
		for i := 0; i+1 < len(keyvals); i += 2 {
			entry.Fields[fmt.Sprintf("%v", keyvals[i])] = keyvals[i+1]
		}
	}

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(out, "ERROR: Failed to marshal log entry: %v\n", err)
		return
	}
	fmt.Fprintln(out, string(jsonBytes))
}

// Debug logs a debug-level message with structured fields
func Debug(message string, keyvals ...interface{}) {
	write(LevelDebug, message, keyvals...)
}

// Info logs an info-level message with structured fields
func Info(message string, keyvals ...interface{}) {
	write(LevelInfo, message, keyvals...)
}

// Warn logs a warning-level message with structured fields
func Warn(message string, keyvals ...interface{}) {
	write(LevelWarn, message, keyvals...)
}

// Error logs an error-level message with structured fields
func Error(message string, keyvals ...interface{}) {
	write(LevelError, message, keyvals...)
}

// SetLevel sets the minimum log level to output
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
}

// GetLevel returns the current minimum log level
func GetLevel() LogLevel {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel
}

// SetOutput redirects log output. Tests use this to capture entries.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}
