package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	logger.Warn("warn %d", 3)
	logger.Error("error %d", 4)

	out := buf.String()
	for _, hidden := range []string{"debug 1", "info 2"} {
		if strings.Contains(out, hidden) {
			t.Errorf("output should not contain %q:\n%s", hidden, out)
		}
	}
	for _, shown := range []string{"warn 3", "error 4"} {
		if !strings.Contains(out, shown) {
			t.Errorf("output should contain %q:\n%s", shown, out)
		}
	}
}

func TestLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "verbose")

	logger.Debug("hidden")
	logger.Info("visible")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug output leaked at default level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("info output missing: %s", buf.String())
	}
}
