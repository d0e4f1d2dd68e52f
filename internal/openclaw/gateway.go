// Package openclaw invokes the external openclaw CLI and normalizes its
// results. The CLI is the system of record for agents, teams, recipes and
// configuration; this package never interprets its output beyond exit status
// and the captured streams.
package openclaw

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// MaxOutputBytes caps each captured stream. Exceeding it fails the
// invocation rather than truncating.
const MaxOutputBytes = 10 * 1024 * 1024

// Result is the uniform outcome of one CLI invocation. OK is true exactly
// when the process exited zero. Run never reports failure as an error.
type Result struct {
	OK       bool   `json:"ok"`
	ExitCode int    `json:"exitCode"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// Invoker runs one openclaw invocation per call. It is the seam the rest of
// the system depends on; tests substitute fakes.
type Invoker interface {
	Run(ctx context.Context, args ...string) Result
}

// Runner executes an external process and captures its output.
// Implementations must be safe for stubbing in tests.
type Runner interface {
	// Run returns the captured streams and exit code. A non-zero exit is
	// not an error; errors are reserved for invocation failures (binary
	// not found, context canceled, output cap exceeded).
	Run(ctx context.Context, name string, args []string) (stdout, stderr string, exitCode int, err error)
}

// ExecRunner is the production Runner over os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args []string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	stdout := newCapBuffer(MaxOutputBytes)
	stderr := newCapBuffer(MaxOutputBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.String(), stderr.String(), exitErr.ExitCode(), nil
		}
		return stdout.String(), stderr.String(), 0, err
	}
	return stdout.String(), stderr.String(), 0, nil
}

// capBuffer accumulates writes up to a fixed cap and then fails.
type capBuffer struct {
	buf []byte
	max int
}

func newCapBuffer(max int) *capBuffer {
	return &capBuffer{max: max}
}

var errOutputCap = fmt.Errorf("output exceeds %d bytes", MaxOutputBytes)

func (b *capBuffer) Write(p []byte) (int, error) {
	if len(b.buf)+len(p) > b.max {
		return 0, errOutputCap
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *capBuffer) String() string {
	return string(b.buf)
}

// Gateway invokes a fixed binary through a Runner. One process per call,
// no retries; retry policy belongs to callers.
type Gateway struct {
	bin    string
	runner Runner
}

func New(bin string) *Gateway {
	return &Gateway{bin: bin, runner: ExecRunner{}}
}

// NewWithRunner builds a Gateway around a custom Runner, for tests.
func NewWithRunner(bin string, r Runner) *Gateway {
	return &Gateway{bin: bin, runner: r}
}

// Run executes the CLI with the given argument vector. Failure of any kind
// is folded into the Result: a failed invocation reports the error message
// as stderr when no stderr was captured, and exit code 1 when the failure
// carries no code.
func (g *Gateway) Run(ctx context.Context, args ...string) Result {
	stdout, stderr, code, err := g.runner.Run(ctx, g.bin, args)
	if err != nil {
		if stderr == "" {
			stderr = err.Error()
		}
		if code == 0 {
			code = 1
		}
		return Result{OK: false, ExitCode: code, Stdout: stdout, Stderr: stderr}
	}
	return Result{OK: code == 0, ExitCode: code, Stdout: stdout, Stderr: stderr}
}
