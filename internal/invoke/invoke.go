// internal/invoke/invoke.go
// Package invoke runs the target CLI as a subprocess with a per-call
// timeout and captured output. Both drivers share it.
package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pilotbench/cnpharness/internal/logging"
)

// Options controls a single invocation.
type Options struct {
	// Timeout bounds the invocation; zero means no deadline.
	Timeout time.Duration
	// Dir is the working directory for the subprocess; empty inherits ours.
	Dir string
}

// Result captures the observable outcome of one invocation. Timeouts and
// non-zero exits are data, not errors: only spawn-level failures surface
// as errors from Runner.Run.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
	TimedOut bool
}

// Success reports whether the invocation completed with exit code 0.
func (r Result) Success() bool {
	return !r.TimedOut && r.ExitCode == 0
}

// OutputSize returns the combined stdout+stderr byte count.
func (r Result) OutputSize() int {
	return len(r.Stdout) + len(r.Stderr)
}

// Text returns trimmed stdout, the payload scenarios parse.
func (r Result) Text() string {
	return strings.TrimSpace(string(r.Stdout))
}

// Runner executes a command line and reports its outcome.
type Runner interface {
	Run(ctx context.Context, argv []string, opt Options) (Result, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// Run executes argv under the configured timeout. On expiry the process is
// killed and the timeout value itself is recorded as the observed duration,
// so a timeout contributes a worst-case latency sample instead of aborting
// the caller's batch.
func (ExecRunner) Run(ctx context.Context, argv []string, opt Options) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("invoke: empty command line")
	}

	runCtx := ctx
	if opt.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opt.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = opt.Dir
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	res := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: elapsed,
	}

	if runCtx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		res.ExitCode = -1
		if opt.Timeout > 0 {
			res.Duration = opt.Timeout
		}
		logging.LogInvocation(argv, res.Duration, res.ExitCode, true)
		return res, nil
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			logging.LogInvocation(argv, res.Duration, res.ExitCode, false)
			return res, nil
		}
		return res, fmt.Errorf("run %q: %w", argv[0], runErr)
	}

	logging.LogInvocation(argv, res.Duration, 0, false)
	return res, nil
}

// BuildAndRun prefixes scenario arguments with the build-and-run
// indirection, e.g. cargo run --bin cnp-unified -- <args>.
func BuildAndRun(buildCmd []string, args ...string) []string {
	argv := make([]string, 0, len(buildCmd)+len(args))
	argv = append(argv, buildCmd...)
	argv = append(argv, args...)
	return argv
}
