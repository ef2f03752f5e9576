package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("expected warn message: %s", out)
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "loud")
	log.Debug().Msg("dbg-msg")
	log.Info().Msg("inf-msg")
	out := buf.String()
	if strings.Contains(out, "dbg-msg") {
		t.Fatalf("debug message should be filtered: %s", out)
	}
	if !strings.Contains(out, "inf-msg") {
		t.Fatalf("expected info message: %s", out)
	}
}
