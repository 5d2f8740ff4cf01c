package executor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolution failures
var (
	ErrNotDirectory  = errors.New("not a directory")
	ErrNotEnterable  = errors.New("permission denied")
	ErrNoHome        = errors.New("home directory unknown")
	ErrRelativeStart = errors.New("working directory must be absolute")
)

// DirError reports a directory change that could not be applied
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("cannot change directory to %s: %v", e.Path, e.Err)
}

func (e *DirError) Unwrap() error {
	return e.Err
}

// ResolveDir resolves a cd target against wd and checks that the result is
// an existing directory the process may enter.
//
// An empty target or "~" means the home directory, and "~/x" is relative to
// it. One pair of matching surrounding quotes is removed. The result is
// cleaned lexically; symlinks are not resolved.
func ResolveDir(wd, target string) (string, error) {
	if !filepath.IsAbs(wd) {
		return "", &DirError{Path: wd, Err: ErrRelativeStart}
	}

	path, err := expandTarget(wd, unquote(strings.TrimSpace(target)))
	if err != nil {
		return "", err
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return "", &DirError{Path: path, Err: statReason(err)}
	}
	if !info.IsDir() {
		return "", &DirError{Path: path, Err: ErrNotDirectory}
	}
	if err := checkEnterable(path); err != nil {
		return "", &DirError{Path: path, Err: ErrNotEnterable}
	}
	return path, nil
}

func expandTarget(wd, target string) (string, error) {
	if target == "" || target == "~" || hasHomePrefix(target) {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return "", &DirError{Path: target, Err: ErrNoHome}
		}
		if len(target) <= 1 {
			return home, nil
		}
		return filepath.Join(home, target[2:]), nil
	}
	if filepath.IsAbs(target) {
		return target, nil
	}
	return filepath.Join(wd, target), nil
}

func hasHomePrefix(target string) bool {
	return len(target) >= 2 && target[0] == '~' && os.IsPathSeparator(target[1])
}

// unquote strips one pair of matching single or double quotes
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func statReason(err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return os.ErrNotExist
	case errors.Is(err, os.ErrPermission):
		return ErrNotEnterable
	}
	return err
}
