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
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return &buf
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEntriesAreJSONWithFields(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelInfo)

	Info("connection opened", "host", "localhost", "port", 1433)

	var entry struct {
		Timestamp string                 `json:"timestamp"`
		Level     string                 `json:"level"`
		Message   string                 `json:"message"`
		Fields    map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log entry is not valid JSON: %v (%q)", err, buf.String())
	}
	if entry.Level != "INFO" {
		t.Errorf("level = %q, want INFO", entry.Level)
	}
	if entry.Message != "connection opened" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.Fields["host"] != "localhost" {
		t.Errorf("fields[host] = %v", entry.Fields["host"])
	}
	if entry.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelWarn)

	Debug("suppressed")
	Info("suppressed")
	Warn("emitted")
	Error("emitted too")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d: %q", len(lines), buf.String())
	}
	if strings.Contains(buf.String(), "suppressed") {
		t.Error("suppressed entries were emitted")
	}
}

func TestSetAndGetLevel(t *testing.T) {
	old := GetLevel()
	defer SetLevel(old)

	SetLevel(LevelDebug)
	if GetLevel() != LevelDebug {
		t.Errorf("GetLevel() = %v, want LevelDebug", GetLevel())
	}
}

func TestOddKeyvalsAreDropped(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelInfo)

	Info("odd", "key1", "value1", "dangling")

	var entry logEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := entry.Fields["dangling"]; ok {
		t.Error("dangling key should not appear as a field")
	}
	if entry.Fields["key1"] != "value1" {
		t.Errorf("fields[key1] = %v", entry.Fields["key1"])
	}
}
