package dispatch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// DetachedLauncher runs a command line through the system shell in its own
// session with output appended to a sink file. The child is reaped in the
// background so it never lingers as a zombie, but its exit status is ignored.
type DetachedLauncher struct {
	// Shell overrides the shell binary (default /bin/sh, or cmd.exe on Windows).
	Shell string
}

// Launch starts commandLine and returns as soon as the OS has accepted it.
// ctx only gates the start; the process outlives it.
func (l DetachedLauncher) Launch(ctx context.Context, commandLine, sink string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := os.OpenFile(sink, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output sink: %w", err)
	}
	defer out.Close()

	stdin, err := os.Open(os.DevNull)
	if err != nil {
		return fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer stdin.Close()

	shell, args := shellCommand(l.Shell, commandLine)
	cmd := exec.Command(shell, args...)
	cmd.Stdin = stdin
	cmd.Stdout = out
	cmd.Stderr = out
	configureDetached(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start process: %w", err)
	}

	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
