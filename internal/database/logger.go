/*-------------------------------------------------------------------------
 *
 * PahVenture MSSQL MCP Server
 *
 * Copyright (c) 2026, PahVenture
 * This software is released under the MIT License
 *
 *-------------------------------------------------------------------------
 */

package database

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/PahVenture/pv-mcp-mssql-server/internal/config"
)

// LogLevel represents the logging verbosity level for database operations
type LogLevel int

const (
	// LogLevelNone disables all database logging
	LogLevelNone LogLevel = iota
	// LogLevelInfo logs connections and errors
	LogLevelInfo
	// LogLevelDebug logs query details and timings
	LogLevelDebug
)

// Logger handles logging for database operations, separate from the main
// structured log so connection tracing can be switched on in isolation.
type Logger struct {
	level  LogLevel
	logger *log.Logger
}

var globalLogger *Logger

func init() {
	levelStr := strings.ToLower(strings.TrimSpace(os.Getenv("MSSQL_MCP_DB_LOG_LEVEL")))

	var level LogLevel
	switch levelStr {
	case "info":
		level = LogLevelInfo
	case "debug":
		level = LogLevelDebug
	default:
		level = LogLevelNone
	}

	globalLogger = &Logger{
		level:  level,
		logger: log.New(os.Stderr, "[DATABASE] ", log.LstdFlags),
	}
}

// SetLogLevel sets the global database log level
func SetLogLevel(level LogLevel) {
	globalLogger.level = level
}

// GetLogLevel returns the current log level
func GetLogLevel() LogLevel {
	return globalLogger.level
}

// Info logs an informational message (connections, errors)
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		l.logger.Printf("[INFO] "+format, args...)
	}
}

// Debug logs a debug message (query details, timings)
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		l.logger.Printf("[DEBUG] "+format, args...)
	}
}

// LogConnection logs a connection attempt with a sanitized connection string.
func LogConnection(cfg *config.Config, duration time.Duration, err error) {
	display := config.SanitizeDSN(cfg.ConnectionString())
	if err != nil {
		globalLogger.Info("Connection failed: connection=%s, duration=%s, category=%s, error=%v",
			display, duration, ClassifyError(err), err)
	} else {
		globalLogger.Info("Connection succeeded: connection=%s, duration=%s",
			display, duration)
	}
}

// LogQuery logs an executed statement with its outcome.
func LogQuery(query string, duration time.Duration, err error) {
	if err != nil {
		globalLogger.Info("Query failed: duration=%s, error=%v", duration, err)
	}
	globalLogger.Debug("Query executed: query=%q, duration=%s", query, duration)
}
