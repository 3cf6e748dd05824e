package testutils

import (
	"bytes"
	"os"
	"reflect"
	"sync"
	"testing"

	"github.com/benoitkugler/webgrid/logger"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// AssertEqual fails the test when got and exp differ, reporting the diff.
// Floats are compared with a small tolerance and unexported fields
// are compared as well.
func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if diff := cmp.Diff(exp, got, compareOptions...); diff != "" {
		t.Fatalf("expected\n%v\n got \n%v\n(-exp +got):\n%s", exp, got, diff)
	}
}

var compareOptions = []cmp.Option{
	cmpopts.EquateApprox(0, 1e-6),
	cmpopts.EquateEmpty(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// LogsCapture collects the messages sent to the package loggers.
type LogsCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *LogsCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// Logs returns the captured lines.
func (c *LogsCapture) Logs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, line := range bytes.Split(c.buf.Bytes(), []byte{'\n'}) {
		if len(line) != 0 {
			out = append(out, string(line))
		}
	}
	return out
}

// CaptureLogs redirects the package loggers until one of the
// Assert methods is called.
func CaptureLogs() *LogsCapture {
	c := &LogsCapture{}
	logger.SetOutput(c)
	return c
}

func (c *LogsCapture) release() { logger.SetOutput(os.Stderr) }

// AssertNoLogs restores the loggers and fails if anything was logged.
func (c *LogsCapture) AssertNoLogs(t *testing.T) {
	t.Helper()
	c.release()
	if logs := c.Logs(); len(logs) != 0 {
		t.Fatalf("expected no logs, got %d: %v", len(logs), logs)
	}
}

// CheckLogs restores the loggers and returns the captured lines.
func (c *LogsCapture) CheckLogs() []string {
	c.release()
	return c.Logs()
}
