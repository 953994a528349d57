//go:build !windows

package reaper

import (
	"errors"
	"os/exec"
	"strconv"
	"syscall"
)

// SignalTerminator sends a signal with kill(2) and falls back to the kill(1)
// utility when the syscall is refused for a reason other than the process
// being gone.
type SignalTerminator struct {
	// Signal defaults to SIGTERM.
	Signal syscall.Signal
	// KillPath defaults to "kill" from PATH.
	KillPath string
}

// Terminate reports whether the signal was delivered.
func (t SignalTerminator) Terminate(pid int) bool {
	// kill(2) treats pid <= 0 as a process group selector.
	if pid <= 0 {
		return false
	}

	sig := t.Signal
	if sig == 0 {
		sig = syscall.SIGTERM
	}

	err := syscall.Kill(pid, sig)
	if err == nil {
		return true
	}
	if errors.Is(err, syscall.ESRCH) {
		return false
	}
	return t.fallback(pid, sig)
}

func (t SignalTerminator) fallback(pid int, sig syscall.Signal) bool {
	bin := t.KillPath
	if bin == "" {
		bin = "kill"
	}
	cmd := exec.Command(bin, "-"+strconv.Itoa(int(sig)), strconv.Itoa(pid))
	return cmd.Run() == nil
}
