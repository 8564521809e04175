// Package sysd provisions the gateway's systemd user service: linger,
// memory limits, daemon reload, and enable/restart with bounded retries.
// Every step is best effort; the package degrades, it never aborts.
package sysd

import (
	"context"
	"os"
	"os/exec"
)

// Runner executes the service manager's CLI surface. Exit codes gate retry
// and warning behavior; output handling is the runner's business.
type Runner interface {
	// Run executes a command, streaming its output to the operator.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes a command and captures stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
