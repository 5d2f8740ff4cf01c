// Package session implements the request, confirm, dispatch loop.
//
// A Session carries the working directory from one turn to the next. Each
// turn reads a request, translates it into a command, asks the operator to
// accept it with a single key, and then either changes the session's
// directory or runs the command in it.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Session is the state that outlives a single turn
type Session struct {
	// ID identifies the session in logs
	ID string

	workingDirectory string
}

// New starts a session in dir, which must be an existing absolute directory
func New(dir string) (*Session, error) {
	if !filepath.IsAbs(dir) {
		return nil, fmt.Errorf("working directory %q is not absolute", dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid working directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("working directory %q is not a directory", dir)
	}

	return &Session{
		ID:               uuid.New().String(),
		workingDirectory: filepath.Clean(dir),
	}, nil
}

// WorkingDirectory returns the directory commands run in
func (s *Session) WorkingDirectory() string {
	return s.workingDirectory
}
