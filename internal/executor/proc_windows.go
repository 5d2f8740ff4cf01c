//go:build windows

package executor

import (
	"os"
	"os/exec"
)

// checkEnterable is a no-op; a directory that stats is enterable on Windows
func checkEnterable(dir string) error {
	return nil
}

func shellArgs(shell, command string) []string {
	return []string{"/C", command}
}

func exitStatus(ps *os.ProcessState) int {
	return ps.ExitCode()
}

func terminateProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
