package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// TimeoutExitStatus is the sentinel status reported when the subprocess
// exceeds its wall-clock budget. It classifies as an execution error.
const TimeoutExitStatus = -1

// Result captures one scanner process execution. A nonzero ExitStatus is
// not an error at this layer.
type Result struct {
	ExitStatus int
	Stdout     string
	Stderr     string
	TimedOut   bool
}

// Runner executes the external scanner binary.
type Runner struct {
	// Binary is the scanner executable; resolved via PATH when relative.
	Binary string
	// Timeout bounds the subprocess wall clock.
	Timeout time.Duration
}

// Run executes the scanner with the given arguments from workdir and
// returns its exit status unconditionally. Extra env entries are appended
// to the inherited environment. The returned error is non-nil only when
// the process could not be run at all (missing binary, bad workdir); it is
// never derived from the exit status, and a timeout is reported through
// Result rather than an error. No retries.
func (r *Runner) Run(ctx context.Context, args, extraEnv []string, workdir string) (Result, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	slog.Info("executing scanner", "binary", r.Binary, "args", strings.Join(args, " "), "workdir", workdir)

	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Dir = workdir
	cmd.Env = append(os.Environ(), extraEnv...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	switch {
	case err == nil:
		res.ExitStatus = 0
	case ctx.Err() == context.DeadlineExceeded:
		slog.Error("scanner timed out", "timeout", timeout)
		res.ExitStatus = TimeoutExitStatus
		res.TimedOut = true
	default:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("running scanner %s: %w", r.Binary, err)
		}
		res.ExitStatus = exitErr.ExitCode()
	}

	slog.Debug("scanner finished", "exit_status", res.ExitStatus, "timed_out", res.TimedOut)
	return res, nil
}
