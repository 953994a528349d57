package census

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnparsable is returned by ParseLine when a process-table line does not
// have the pid / start time / command shape.
var ErrUnparsable = errors.New("census: unparsable process line")

// lstartLayout is the C-locale `ps -o lstart` format once runs of spaces are
// collapsed, e.g. "Mon Jan 2 15:04:05 2006".
const lstartLayout = "Mon Jan 2 15:04:05 2006"

var linePattern = regexp.MustCompile(`^(\d+)\s+(\w+\s+\w+\s+\d+\s+\d+:\d+:\d+\s+\d+)\s+(.*)$`)

// Record is a point-in-time snapshot of one running process.
type Record struct {
	PID         int
	StartTime   time.Time
	CommandLine string
}

// Age returns how long the process has been running at now. StartTime only
// has whole-second resolution, so now is truncated to the second as well and
// the fraction ps dropped is never counted as age.
func (r Record) Age(now time.Time) time.Duration {
	return now.Truncate(time.Second).Sub(r.StartTime)
}

// ParseLine parses one line of `ps -eo pid=,lstart=,args=` output. Start times
// are interpreted in the local time zone, which is what ps prints them in.
func ParseLine(line string) (Record, error) {
	m := linePattern.FindStringSubmatch(strings.TrimSpace(line))
	if len(m) != 4 {
		return Record{}, fmt.Errorf("%w: %q", ErrUnparsable, line)
	}

	pid, err := strconv.Atoi(m[1])
	if err != nil || pid <= 0 {
		return Record{}, fmt.Errorf("%w: bad pid %q", ErrUnparsable, m[1])
	}

	started, err := time.ParseInLocation(lstartLayout, strings.Join(strings.Fields(m[2]), " "), time.Local)
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad start time %q: %v", ErrUnparsable, m[2], err)
	}

	return Record{
		PID:         pid,
		StartTime:   started,
		CommandLine: m[3],
	}, nil
}
