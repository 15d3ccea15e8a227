package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger_UsesJSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger(Options{Level: "debug", Writer: &buf, Component: "todoapp"})
	lg.Debug("boot", "k", "v")

	out := strings.TrimSpace(buf.String())
	if !strings.Contains(out, `"level":"DEBUG"`) {
		t.Fatalf("expected DEBUG level, got %s", out)
	}
	if !strings.Contains(out, `"component":"todoapp"`) {
		t.Fatalf("expected component field, got %s", out)
	}
}

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger(Options{Level: "warn", Writer: &buf})
	lg.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn, got %s", buf.String())
	}
	lg.Warn("loud")
	if !strings.Contains(buf.String(), `"msg":"loud"`) {
		t.Fatalf("expected warn entry, got %s", buf.String())
	}
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger(Options{Writer: &buf, Format: "text"})
	lg.Info("hello", "method", "GET")
	out := buf.String()
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "method=GET") {
		t.Fatalf("expected text handler output, got %s", out)
	}
}
