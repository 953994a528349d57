//go:build !windows

package reaper

import (
	"errors"
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalTerminatorKillsRunningProcess(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	require.NoError(t, cmd.Start())

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	assert.True(t, SignalTerminator{}.Terminate(cmd.Process.Pid))

	select {
	case err := <-waitErr:
		var exitErr *exec.ExitError
		require.True(t, errors.As(err, &exitErr), "expected exit error, got %v", err)
		status, ok := exitErr.Sys().(syscall.WaitStatus)
		require.True(t, ok)
		assert.Equal(t, syscall.SIGTERM, status.Signal())
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("process did not exit after SIGTERM")
	}
}

func TestSignalTerminatorExitedProcessReportsFailure(t *testing.T) {
	cmd := exec.Command("true")
	require.NoError(t, cmd.Run())

	assert.False(t, SignalTerminator{}.Terminate(cmd.Process.Pid))
}

func TestSignalTerminatorRejectsNonPositivePID(t *testing.T) {
	assert.False(t, SignalTerminator{}.Terminate(0))
	assert.False(t, SignalTerminator{}.Terminate(-1))
}
