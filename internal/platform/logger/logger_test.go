package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestStdLogger_JSONIncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "horse-registry", Output: &buf})

	l.With(map[string]any{"component": "resolver"}).Warn("parent resolution failed", map[string]any{"id": 42})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if entry["app"] != "horse-registry" || entry["component"] != "resolver" {
		t.Fatalf("missing base fields: %v", entry)
	}
	if entry["level"] != "warn" || entry["msg"] != "parent resolution failed" || entry["id"] != float64(42) {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestStdLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Output: &buf})

	l.Debug("hidden", nil)
	l.Info("hidden", nil)
	l.Error("shown", map[string]any{"b": 2, "a": 1})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug/info to be filtered, got %q", out)
	}
	// text: keys ordenadas
	if !strings.Contains(out, "a=1 b=2 level=error msg=shown") {
		t.Fatalf("unexpected text line %q", out)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("nope") != Info || ParseLevel("") != Info {
		t.Fatalf("unexpected level parsing")
	}
	if ParseFormat(" JSON ") != FormatJSON || ParseFormat("xml") != FormatText {
		t.Fatalf("unexpected format parsing")
	}
}
