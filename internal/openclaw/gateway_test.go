package openclaw

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubRunner struct {
	stdout   string
	stderr   string
	exitCode int
	err      error

	calls [][]string
}

func (s *stubRunner) Run(_ context.Context, name string, args []string) (string, string, int, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	return s.stdout, s.stderr, s.exitCode, s.err
}

func TestRunSuccess(t *testing.T) {
	r := &stubRunner{stdout: "done\n"}
	g := NewWithRunner("openclaw", r)

	res := g.Run(context.Background(), "recipes", "list")
	if !res.OK {
		t.Fatal("expected ok result")
	}
	if res.ExitCode != 0 {
		t.Errorf("expected exit 0, got %d", res.ExitCode)
	}
	if res.Stdout != "done\n" {
		t.Errorf("unexpected stdout: %q", res.Stdout)
	}
	if len(r.calls) != 1 {
		t.Fatalf("expected one invocation, got %d", len(r.calls))
	}
	want := []string{"openclaw", "recipes", "list"}
	for i, a := range want {
		if r.calls[0][i] != a {
			t.Errorf("call arg %d = %q, want %q", i, r.calls[0][i], a)
		}
	}
}

func TestRunNonZeroExit(t *testing.T) {
	r := &stubRunner{stderr: "boom\n", exitCode: 2}
	g := NewWithRunner("openclaw", r)

	res := g.Run(context.Background(), "recipes", "scaffold", "x")
	if res.OK {
		t.Fatal("expected failure result")
	}
	if res.ExitCode != 2 {
		t.Errorf("expected exit 2, got %d", res.ExitCode)
	}
	if res.Stderr != "boom\n" {
		t.Errorf("unexpected stderr: %q", res.Stderr)
	}
}

func TestRunInvocationError(t *testing.T) {
	r := &stubRunner{err: errors.New("exec: \"openclaw\": executable file not found in $PATH")}
	g := NewWithRunner("openclaw", r)

	res := g.Run(context.Background(), "config", "get", "x")
	if res.OK {
		t.Fatal("expected failure result")
	}
	if res.ExitCode != 1 {
		t.Errorf("expected default exit 1, got %d", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "executable file not found") {
		t.Errorf("expected error message recovered as stderr, got %q", res.Stderr)
	}
}

func TestRunInvocationErrorKeepsCapturedStderr(t *testing.T) {
	r := &stubRunner{stderr: "partial diagnostics", err: errors.New("signal: killed")}
	g := NewWithRunner("openclaw", r)

	res := g.Run(context.Background(), "agent", "--agent", "x", "--message", "hi")
	if res.OK {
		t.Fatal("expected failure result")
	}
	if res.Stderr != "partial diagnostics" {
		t.Errorf("captured stderr must win over the error message, got %q", res.Stderr)
	}
}

func TestCapBuffer(t *testing.T) {
	b := newCapBuffer(8)
	if _, err := b.Write([]byte("12345678")); err != nil {
		t.Fatalf("write within cap: %v", err)
	}
	if _, err := b.Write([]byte("9")); err == nil {
		t.Fatal("expected overflow error")
	}
	if b.String() != "12345678" {
		t.Errorf("buffer mutated on failed write: %q", b.String())
	}
}
