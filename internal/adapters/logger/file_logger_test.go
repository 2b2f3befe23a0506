package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Debug("hidden")
	l.Warn("careful")
	l.Error("broken")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line written with debug disabled")
	}
	if !strings.Contains(out, "WARN: ") || !strings.Contains(out, "careful") {
		t.Errorf("missing warn line:\n%s", out)
	}
	if !strings.Contains(out, "ERROR: ") || !strings.Contains(out, "broken") {
		t.Errorf("missing error line:\n%s", out)
	}

	buf.Reset()
	New(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "DEBUG: ") {
		t.Errorf("debug line missing with debug enabled: %q", buf.String())
	}
}

func TestNewFileLogger_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "worktime.log")
	l, err := NewFileLogger(path, false)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	l.Error("first")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "first") {
		t.Errorf("log file = %q", data)
	}
}
