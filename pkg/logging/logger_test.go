package logging

import (
	"os"
	"strings"
	"testing"
)

func TestRunIDStableAcrossLoggers(t *testing.T) {
	a, _ := NewLogger("checker")
	defer a.Close()
	b, _ := NewLogger("browser")
	defer b.Close()

	if a.RunID() == "" {
		t.Fatal("run ID should not be empty")
	}
	if a.RunID() != b.RunID() {
		t.Errorf("loggers in one execution must share a run ID: %q vs %q", a.RunID(), b.RunID())
	}
	if a.RunID() != GetRunID() {
		t.Errorf("RunID() = %q, GetRunID() = %q", a.RunID(), GetRunID())
	}
}

func TestLoggerWritesToRunFile(t *testing.T) {
	l, err := NewLogger("test")
	if err != nil {
		t.Skipf("file logging unavailable: %v", err)
	}
	defer l.Close()

	l.Infof("hello %s", "world")
	l.Warnf("watch out")

	data, err := os.ReadFile(l.LogPath())
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "[test] [INFO] hello world") {
		t.Errorf("log missing info line:\n%s", content)
	}
	if !strings.Contains(content, "[test] [WARN] watch out") {
		t.Errorf("log missing warn line:\n%s", content)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	l, _ := NewLogger("close-test")
	if err := l.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
