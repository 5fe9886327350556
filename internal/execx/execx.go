// Package execx runs the external git and gitleaks commands and reports their
// exit codes. Command output is captured into the run log, never the terminal.
package execx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	applog "github.com/Blazekiller8/mpgitleaks/internal/log"
)

// Runner executes one external command in dir and returns its exit code.
// Exit code 0 means success; any nonzero code is reported uniformly. A non-nil
// error means the command could not be run or was cut short (cancellation,
// timeout), not that it exited nonzero.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (int, error)
}

// ErrTimeout reports that a command exceeded the configured per-command
// timeout. Callers fold it into the branch's scan outcome but log it apart
// from ordinary nonzero exits.
var ErrTimeout = errors.New("command timed out")

// CommandRunner is the real Runner backed by os/exec.
type CommandRunner struct {
	// Timeout bounds each command invocation. Zero disables the bound, which
	// leaves a hung external tool stalling its worker indefinitely.
	Timeout time.Duration

	Log *slog.Logger
}

func NewCommandRunner(timeout time.Duration, logger *slog.Logger) *CommandRunner {
	if logger == nil {
		logger = applog.Discard()
	}
	return &CommandRunner{Timeout: timeout, Log: logger}
}

func (r *CommandRunner) Run(ctx context.Context, dir string, name string, args ...string) (int, error) {
	cmdCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	r.Log.Debug("executing command", "command", name+" "+strings.Join(args, " "), "dir", dir)

	cmd := exec.CommandContext(cmdCtx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		r.Log.Debug("command output", "command", name, "output", string(out))
	}

	if cmdCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		r.Log.Warn("command timed out", "command", name, "timeout", r.Timeout.String())
		return -1, fmt.Errorf("%s after %s: %w", name, r.Timeout, ErrTimeout)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			r.Log.Debug("command exited nonzero", "command", name, "code", code)
			return code, nil
		}
		return -1, fmt.Errorf("running %s: %w", name, err)
	}

	r.Log.Debug("command exited", "command", name, "code", 0)
	return 0, nil
}
