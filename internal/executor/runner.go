// Package executor runs accepted commands and resolves directory changes.
//
// Commands run through the system shell with the operator's terminal
// attached, so interactive programs behave as they would at a normal prompt.
// The working directory is always passed in explicitly; the process-wide
// current directory is never read or changed.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/quocvuong92/ai-exec/internal/logging"
)

// shutdownGrace is how long a child may take to exit after the session is cancelled
const shutdownGrace = 3 * time.Second

// ShellRunner runs command lines through a shell, one at a time
type ShellRunner struct {
	shell  string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	mu      sync.Mutex
	current *exec.Cmd
}

// RunnerOption configures a ShellRunner
type RunnerOption func(*ShellRunner)

// WithStdio replaces the inherited standard streams
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) RunnerOption {
	return func(r *ShellRunner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewShellRunner creates a runner for shell ("/bin/sh", "cmd", ...)
func NewShellRunner(shell string, opts ...RunnerOption) *ShellRunner {
	r := &ShellRunner{
		shell:  shell,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Shell returns the configured interpreter
func (r *ShellRunner) Shell() string {
	return r.shell
}

// Run executes command in dir and waits for it. Any exit status, zero or
// not, is a normal result; an error means the child could not be started
// or waited for.
func (r *ShellRunner) Run(ctx context.Context, dir, command string) (int, error) {
	cmd := exec.CommandContext(ctx, r.shell, shellArgs(r.shell, command)...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "PWD="+dir)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Cancel = func() error { return terminateProcess(cmd) }
	cmd.WaitDelay = shutdownGrace

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("failed to start %s: %w", r.shell, err)
	}

	r.mu.Lock()
	r.current = cmd
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.current = nil
		r.mu.Unlock()
	}()

	logging.Debug("child started", logging.Fields{
		"pid":   cmd.Process.Pid,
		"shell": r.shell,
		"dir":   dir,
	})

	err := cmd.Wait()
	if cmd.ProcessState == nil {
		return -1, fmt.Errorf("failed to wait for command: %w", err)
	}

	status := exitStatus(cmd.ProcessState)
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) && !errors.Is(err, exec.ErrWaitDelay) {
		// The child exited but its I/O could not be completed
		logging.Warn("command I/O incomplete", logging.Fields{"error": err.Error()})
	}
	return status, nil
}

// Running reports whether a child is currently executing
func (r *ShellRunner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current != nil
}

// HandleSignal routes an operator signal while a child runs. It returns
// false when no child is running so the caller can end the session.
//
// When stdin is a terminal the child is in the terminal's foreground
// process group and has already received the signal from the line
// discipline; otherwise it is forwarded here.
func (r *ShellRunner) HandleSignal(sig os.Signal) bool {
	r.mu.Lock()
	cmd := r.current
	r.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return false
	}
	if !stdinIsTerminal(r.stdin) {
		if err := cmd.Process.Signal(sig); err != nil && !errors.Is(err, os.ErrProcessDone) {
			logging.Warn("failed to forward signal", logging.Fields{
				"signal": sig.String(),
				"error":  err.Error(),
			})
		}
	}
	return true
}

func stdinIsTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
