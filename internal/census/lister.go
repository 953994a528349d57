package census

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Lister returns the raw process table, one process per line, in the
// `pid lstart args` shape understood by ParseLine.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// ListerFunc adapts a function to the Lister interface.
type ListerFunc func(ctx context.Context) ([]string, error)

// List calls f.
func (f ListerFunc) List(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// PSLister reads the process table with ps(1) under the C locale so that start
// times are printed in a stable English format.
type PSLister struct {
	// Path overrides the ps binary. Empty means "ps" from PATH.
	Path string
}

// List runs ps and drops the line describing ps itself.
func (p PSLister) List(ctx context.Context) ([]string, error) {
	bin := p.Path
	if bin == "" {
		bin = "ps"
	}

	cmd := exec.CommandContext(ctx, bin, "-ww", "-eo", "pid=,lstart=,args=")
	cmd.Env = append(os.Environ(), "LC_ALL=C", "LANG=C")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w: %s", bin, err, strings.TrimSpace(stderr.String()))
	}

	helper := ""
	if cmd.Process != nil {
		helper = strconv.Itoa(cmd.Process.Pid)
	}

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if helper != "" && firstField(line) == helper {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s output: %w", bin, err)
	}
	return lines, nil
}

func firstField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
