package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// maxStderrTail bounds how much stderr is kept on a failed command
const maxStderrTail = 2048

// Runner defines the interface for running external commands
// This allows mocking exec.Command in tests
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Error describes a failed external command
type Error struct {
	Command  string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExecRunner is the production implementation using os/exec
type ExecRunner struct {
	// Stderr receives a live copy of the command's stderr when set
	Stderr io.Writer
}

// NewExecRunner creates a runner that mirrors stderr to w (may be nil)
func NewExecRunner(w io.Writer) *ExecRunner {
	return &ExecRunner{Stderr: w}
}

// Run executes a command and returns any error
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = r.stderr(&stderr)
	if err := cmd.Run(); err != nil {
		return wrapError(ctx, name, args, stderr.String(), err)
	}
	return nil
}

// Output executes a command and returns its stdout
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = r.stderr(&stderr)
	out, err := cmd.Output()
	if err != nil {
		return out, wrapError(ctx, name, args, stderr.String(), err)
	}
	return out, nil
}

func (r *ExecRunner) stderr(buf *bytes.Buffer) io.Writer {
	if r.Stderr == nil {
		return buf
	}
	return io.MultiWriter(buf, r.Stderr)
}

func wrapError(ctx context.Context, name string, args []string, stderr string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s interrupted: %w", name, ctxErr)
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return &Error{
		Command:  name,
		Args:     args,
		ExitCode: exitCode,
		Stderr:   tail(strings.TrimSpace(stderr), maxStderrTail),
		Err:      err,
	}
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
