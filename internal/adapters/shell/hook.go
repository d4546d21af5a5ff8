// Package shell runs package build hooks through the system shell.
package shell

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"github.com/pakrat/pakr/internal/core/domain"
	"github.com/pakrat/pakr/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.HookRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new hook runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes command via `sh -c` with dir as the working directory. Stdout
// and stderr are streamed to out so hook output lands in the package's
// progress vertex rather than interleaved on the global stream.
func (r *Runner) Run(ctx context.Context, dir, command string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command) //nolint:gosec // hook command comes from the lockfile
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out

	r.logger.Info("running hook in " + dir)
	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, domain.ErrHookFailed.Error()), "exit_code", exitCode)
	}
	return nil
}
