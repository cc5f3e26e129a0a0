package charmlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Writer: &buf, Level: "WARN"})

	l.Info("hidden")
	l.Warn("shown", "endpoint", "/api/tasks")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "endpoint=/api/tasks") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestNewLoggerBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Writer: &buf, Level: "loud"})
	l.Debug("debug line")
	l.Info("info line")
	if strings.Contains(buf.String(), "debug line") {
		t.Error("debug should be filtered at info level")
	}
	if !strings.Contains(buf.String(), "info line") {
		t.Error("info should be logged")
	}
}
