package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "INFO", "warn", "warning", "error"} {
		if _, err := New(level, &bytes.Buffer{}); err != nil {
			t.Errorf("level %q: unexpected error %v", level, err)
		}
	}
	if _, err := New("loud", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewWritesStructuredInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Info("stack resolved", "results", 3)
	logger.V(1).Info("hidden at info level")

	out := buf.String()
	if !strings.Contains(out, `"msg":"stack resolved"`) || !strings.Contains(out, `"results":3`) {
		t.Errorf("expected JSON info line, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line leaked at info level: %q", out)
	}
}

func TestNewErrorLevelSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("error", &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
