package cmd

import (
	"errors"
	"testing"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/exit"
)

func executeArgs(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	t.Setenv("SUBSERVICE", "")
	t.Setenv("HOSTED_ZONE_ID", "")
	root := NewRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var exitErr *exit.Error
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exitErr.Code != code {
		t.Fatalf("expected exit code %d, got %d (%v)", code, exitErr.Code, err)
	}
}

func TestRunRequiresRegion(t *testing.T) {
	err := executeArgs(t, "run", "--subservice", "oneshot", "--hosted-zone-id", "Z123")
	requireExitCode(t, err, exit.CodeConfig)
}

func TestRunRequiresHostedZone(t *testing.T) {
	err := executeArgs(t, "run", "--region", "ap-south-1", "--subservice", "oneshot")
	requireExitCode(t, err, exit.CodeConfig)
}

func TestRunRejectsOutputMode(t *testing.T) {
	err := executeArgs(t, "run", "--region", "ap-south-1", "--subservice", "oneshot", "--hosted-zone-id", "Z123", "--output", "xml")
	requireExitCode(t, err, exit.CodeConfig)
}

func TestRunRejectsSelector(t *testing.T) {
	err := executeArgs(t, "run", "--region", "ap-south-1", "--subservice", "oneshot", "--hosted-zone-id", "Z123", "--selector", "Rack in (a")
	requireExitCode(t, err, exit.CodeConfig)
}

func TestDiscoverRequiresSubservice(t *testing.T) {
	err := executeArgs(t, "discover", "--region", "ap-south-1")
	requireExitCode(t, err, exit.CodeConfig)
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Fatalf("expected b, got %s", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Fatalf("expected empty, got %s", got)
	}
}
