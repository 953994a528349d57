//go:build windows

package dispatch

import (
	"os/exec"
	"syscall"
)

const detachedProcess = 0x00000008

func configureDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | detachedProcess,
	}
}

func shellCommand(shell, commandLine string) (string, []string) {
	if shell == "" {
		shell = "cmd.exe"
	}
	return shell, []string{"/C", commandLine}
}
