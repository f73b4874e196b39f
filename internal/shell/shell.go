// Package shell runs the external tools this pipeline orchestrates
// (sra-tools, qiime, picrust2) as subprocesses with captured output and a
// deadline, and lets tests substitute a fake runner for every tool contract.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Command describes one external tool invocation.
type Command struct {
	Name string
	Args []string
}

// String renders the command the way a user would type it, for logs and
// error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result carries whatever the tool produced, even when it failed.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr. Several sra-tools emit
// diagnostics on either stream depending on version, so classification and
// error reporting always look at both.
func (r Result) Combined() string {
	if r.Stdout == "" {
		return r.Stderr
	}
	if r.Stderr == "" {
		return r.Stdout
	}
	return r.Stdout + "\n" + r.Stderr
}

// Runner abstracts subprocess execution so the pipeline can be exercised in
// tests without any of the external tools installed.
type Runner interface {
	// Run executes the command and blocks until it exits. A non-zero exit,
	// a start failure, or a deadline expiry all return a non-nil error; the
	// Result still carries any output captured before the failure.
	Run(ctx context.Context, cmd Command) (Result, error)

	// LookPath reports whether the named tool resolves to an executable.
	LookPath(name string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct {
	// DefaultTimeout bounds every invocation. Zero disables the bound.
	DefaultTimeout time.Duration
}

// Run implements Runner.
func (e ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if e.DefaultTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.DefaultTimeout)
		defer cancel()
	}

	proc := exec.CommandContext(ctx, cmd.Name, cmd.Args...)

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	err := proc.Run()

	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if proc.ProcessState != nil {
		res.ExitCode = proc.ProcessState.ExitCode()
	}

	if err != nil {
		// A killed process reports a generic exit error; surface the
		// deadline instead so callers can name the real cause.
		if ctx.Err() != nil {
			return res, fmt.Errorf("%s: %w", cmd.Name, ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return res, fmt.Errorf("%s exited with status %d", cmd.Name, res.ExitCode)
		}
		return res, fmt.Errorf("starting %s: %w", cmd.Name, err)
	}

	return res, nil
}

// LookPath implements Runner.
func (e ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
