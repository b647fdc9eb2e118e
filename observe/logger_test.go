package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// parseLogLine decodes a single JSON log line from the buffer.
func parseLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got none")
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("failed to parse log line %q: %v", line, err)
	}
	return entry
}

// TestLogger_WritesJSON verifies basic structured output.
func TestLogger_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "check completed", Field{Key: "healthy", Value: true})

	entry := parseLogLine(t, &buf)
	if entry["msg"] != "check completed" {
		t.Errorf("msg = %v, want %q", entry["msg"], "check completed")
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want %q", entry["level"], "info")
	}
	if entry["healthy"] != true {
		t.Errorf("healthy = %v, want true", entry["healthy"])
	}
	if entry["timestamp"] == nil {
		t.Error("expected timestamp field")
	}
}

// TestLogger_LevelFiltering verifies messages below the configured level are dropped.
func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	logger.Debug(context.Background(), "dropped")
	logger.Info(context.Background(), "dropped")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn level, got: %s", buf.String())
	}

	logger.Warn(context.Background(), "kept")
	if buf.Len() == 0 {
		t.Error("expected warn message to be logged")
	}
}

// TestLogger_WithCheck verifies check context is attached to every entry.
func TestLogger_WithCheck(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	checkLogger := logger.WithCheck(CheckMeta{
		Name:      "database",
		Component: "storage",
	})
	checkLogger.Info(context.Background(), "check passed")

	entry := parseLogLine(t, &buf)
	if entry["check.name"] != "database" {
		t.Errorf("check.name = %v, want %q", entry["check.name"], "database")
	}
	if entry["check.component"] != "storage" {
		t.Errorf("check.component = %v, want %q", entry["check.component"], "storage")
	}
}

// TestLogger_WithCheck_OmitsEmptyComponent verifies optional fields are not emitted.
func TestLogger_WithCheck_OmitsEmptyComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.WithCheck(CheckMeta{Name: "cache"}).Info(context.Background(), "ok")

	entry := parseLogLine(t, &buf)
	if _, ok := entry["check.component"]; ok {
		t.Error("expected check.component to be omitted when empty")
	}
}

// TestLogger_Redaction verifies sensitive fields are redacted.
func TestLogger_Redaction(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"password field", "password"},
		{"token field", "token"},
		{"api key field", "api_key"},
		{"credential field", "credential"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter("info", &buf)

			logger.Info(context.Background(), "auth", Field{Key: tt.key, Value: "hunter2"})

			entry := parseLogLine(t, &buf)
			if entry[tt.key] != "[REDACTED]" {
				t.Errorf("%s = %v, want [REDACTED]", tt.key, entry[tt.key])
			}
		})
	}
}

// TestLogger_NonRedactedFieldPassesThrough verifies ordinary fields are preserved.
func TestLogger_NonRedactedFieldPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "check", Field{Key: "duration_ms", Value: 42.0})

	entry := parseLogLine(t, &buf)
	if entry["duration_ms"] != 42.0 {
		t.Errorf("duration_ms = %v, want 42", entry["duration_ms"])
	}
}

// TestParseLogLevel verifies level parsing, including the default.
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
