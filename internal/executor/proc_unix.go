//go:build !windows

package executor

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// checkEnterable reports whether the process has search permission on dir
func checkEnterable(dir string) error {
	return unix.Access(dir, unix.X_OK)
}

// shellArgs builds the argument list for running command through shell
func shellArgs(shell, command string) []string {
	return []string{"-c", command}
}

// exitStatus maps a finished process to a shell-style status. A child
// killed by a signal reports 128+signal.
func exitStatus(ps *os.ProcessState) int {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ps.ExitCode()
}

// terminateProcess asks the child to stop when the session is shutting down
func terminateProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Signal(syscall.SIGTERM)
}
