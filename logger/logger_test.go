package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	WarningLogger.Warn("unknown grid line name", "name", "main")
	if s := buf.String(); !strings.Contains(s, "unknown grid line name") || !strings.Contains(s, "name=main") {
		t.Fatalf("unexpected warning output %q", s)
	}
}

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	ProgressLogger.Debug("sizing columns")
	if buf.Len() != 0 {
		t.Fatalf("progress should be silent by default, got %q", buf.String())
	}

	SetVerbose(true)
	defer SetVerbose(false)
	ProgressLogger.Debug("sizing columns")
	if !strings.Contains(buf.String(), "sizing columns") {
		t.Fatalf("expected progress output, got %q", buf.String())
	}
}
