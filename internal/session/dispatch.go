package session

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/quocvuong92/ai-exec/internal/executor"
)

// Runner executes a command line in a directory and returns its exit status
type Runner interface {
	Run(ctx context.Context, dir, command string) (int, error)
}

// Dispatcher applies an accepted command to a session
type Dispatcher struct {
	runner  Runner
	resolve func(wd, target string) (string, error)

	// BeforeRun, when set, is called right before a generic command starts
	BeforeRun func(command string)
}

// NewDispatcher creates a Dispatcher that runs generic commands with runner
func NewDispatcher(runner Runner) *Dispatcher {
	return &Dispatcher{
		runner:  runner,
		resolve: executor.ResolveDir,
	}
}

// DirectoryTarget reports whether command is a directory change and returns
// its target. Only "cd" exactly, or "cd" followed by whitespace, matches.
func DirectoryTarget(command string) (string, bool) {
	if command == "cd" {
		return "", true
	}
	if !strings.HasPrefix(command, "cd") {
		return "", false
	}
	rest := command[2:]
	if rest == "" || !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// Dispatch handles command, which the operator has already accepted
func (d *Dispatcher) Dispatch(ctx context.Context, s *Session, command string) Outcome {
	command = strings.TrimSpace(command)

	if target, ok := DirectoryTarget(command); ok {
		dir, err := d.resolve(s.workingDirectory, target)
		if err != nil {
			path := target
			var dirErr *executor.DirError
			if errors.As(err, &dirErr) {
				path = dirErr.Path
			}
			return Outcome{Kind: DirectoryError, Path: path, Err: err}
		}
		s.workingDirectory = dir
		return Outcome{Kind: DirectoryChanged, Path: dir}
	}

	if d.BeforeRun != nil {
		d.BeforeRun(command)
	}
	status, err := d.runner.Run(ctx, s.workingDirectory, command)
	if err != nil {
		return Outcome{Kind: ExecutionError, Err: err}
	}
	return Outcome{Kind: Executed, ExitStatus: status}
}
