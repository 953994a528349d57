//go:build !windows

package dispatch

import (
	"os/exec"
	"syscall"
)

func configureDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

// shellCommand uses exec so the shell is replaced by the command and the
// process table shows the command line itself.
func shellCommand(shell, commandLine string) (string, []string) {
	if shell == "" {
		shell = "/bin/sh"
	}
	return shell, []string{"-c", "exec " + commandLine}
}
