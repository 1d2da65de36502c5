package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
)

func TestConsoleWritesToWriter(t *testing.T) {
	pterm.DisableColor()
	var buf bytes.Buffer
	c := New(&buf, false)

	c.Infof("found %d instances", 3)
	c.Warnf("no %s instances", "zookeeper")
	c.Debugf("hidden")

	out := buf.String()
	if !strings.Contains(out, "found 3 instances") {
		t.Fatalf("missing info line: %q", out)
	}
	if !strings.Contains(out, "no zookeeper instances") {
		t.Fatalf("missing warning line: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug output must be suppressed without verbose: %q", out)
	}
}

func TestConsoleVerbose(t *testing.T) {
	pterm.DisableColor()
	var buf bytes.Buffer
	New(&buf, true).Debugf("filters=%s", "running")
	if !strings.Contains(buf.String(), "filters=running") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}
