package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Warn("workflow.decision_failed", map[string]any{
		"workflow_id": "wf-1",
		"err":         errors.New("boom"),
		"msg":         "must not override",
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	want := map[string]string{
		"level":       "warn",
		"msg":         "workflow.decision_failed",
		"workflow_id": "wf-1",
		"err":         "boom",
	}
	for key, value := range want {
		if entry[key] != value {
			t.Fatalf("%s = %v, want %q", key, entry[key], value)
		}
	}
	if ts, _ := entry["ts"].(string); ts == "" {
		t.Fatalf("expected ts to be set")
	}
}
