package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceWritesJSONWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})

	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file while tracing is off, got %v", err)
	}

	SetTraceEnabled(true)
	Trace("popup.show", map[string]interface{}{"id": "a"})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.Event != "popup.show" || entry.Payload["id"] != "a" {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestErrorAppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	Error(nil)
	Error(errors.New("first"))
	Errorf("second %d", 2)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", string(data))
	}
	if !strings.HasSuffix(lines[0], "first") || !strings.HasSuffix(lines[1], "second 2") {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestConfigureEmptyFallsBackToDefault(t *testing.T) {
	Configure("  ")
	if Path() != defaultLogFile {
		t.Fatalf("expected default path, got %s", Path())
	}
}
