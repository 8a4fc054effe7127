package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	zlog := zerolog.New(buf).With().Timestamp().Logger()
	return &Logger{zlog: zlog}
}

func TestNew(t *testing.T) {
	for _, env := range []string{"development", "production", "test"} {
		logger := New(env)
		if logger == nil {
			t.Fatalf("New(%q) returned nil", env)
		}
		if logger.GetZerolog() == nil {
			t.Errorf("New(%q) has no zerolog instance", env)
		}
	}
}

func TestInfo_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.Info("valuation calculated", map[string]interface{}{
		"bmv_score":    16.67,
		"credits_used": 2,
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["message"] != "valuation calculated" {
		t.Errorf("unexpected message: %v", entry["message"])
	}
	if entry["bmv_score"] != 16.67 {
		t.Errorf("unexpected bmv_score: %v", entry["bmv_score"])
	}
	if entry["level"] != "info" {
		t.Errorf("unexpected level: %v", entry["level"])
	}
}

func TestError_IncludesError(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.Error("lookup failed", errors.New("provider timeout"), nil)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["error"] != "provider timeout" {
		t.Errorf("unexpected error field: %v", entry["error"])
	}
	if entry["level"] != "error" {
		t.Errorf("unexpected level: %v", entry["level"])
	}
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf).WithRequestID("req-123")

	logger.Info("hello", nil)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Errorf("unexpected request_id: %v", entry["request_id"])
	}
}

func TestWith_ChildFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf).With(map[string]interface{}{
		"component": "engine",
	})

	logger.Warn("degraded to fallback", nil)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["component"] != "engine" {
		t.Errorf("unexpected component: %v", entry["component"])
	}
}
