package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestWriteIncludesLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Warn("cache.unavailable", map[string]any{"err": errors.New("dial tcp"), "level": "ignored"})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["level"] != "warn" {
		t.Fatalf("expected warn level, got %v", entry["level"])
	}
	if entry["msg"] != "cache.unavailable" {
		t.Fatalf("unexpected msg %v", entry["msg"])
	}
	if entry["err"] != "dial tcp" {
		t.Fatalf("expected error rendered as string, got %v", entry["err"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts field")
	}
}
