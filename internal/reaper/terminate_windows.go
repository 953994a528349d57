//go:build windows

package reaper

import (
	"os"
	"os/exec"
	"strconv"
)

// SignalTerminator kills the process through the OS handle and falls back to
// taskkill when that fails.
type SignalTerminator struct {
	// KillPath defaults to "taskkill" from PATH.
	KillPath string
}

// Terminate reports whether the kill request was accepted.
func (t SignalTerminator) Terminate(pid int) bool {
	if pid <= 0 {
		return false
	}

	if proc, err := os.FindProcess(pid); err == nil {
		if err := proc.Kill(); err == nil {
			return true
		}
	}

	bin := t.KillPath
	if bin == "" {
		bin = "taskkill"
	}
	return exec.Command(bin, "/PID", strconv.Itoa(pid), "/F").Run() == nil
}
