// Package backup invokes the configured backup program. The program is
// an opaque external executable: klet runs it synchronously against the
// mounted volume and reports its exit status, but a backup failure
// never alters the workflow outcome — reporting backup errors is the
// backup program's own job.
package backup

import (
	"context"
	"os"
	"os/exec"
)

// Runner runs the backup program to completion
type Runner interface {
	Run(ctx context.Context, program string, args []string) error
}

// ExecRunner runs the backup program as a child process inheriting
// klet's stdout and stderr.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the program and blocks until it exits
func (r *ExecRunner) Run(ctx context.Context, program string, args []string) error {
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
