package queue

import (
	"strings"
	"time"
)

// Command is one queued invocation of the base command. It is identified by
// its queue position; ID only correlates log lines.
type Command struct {
	ID         string
	Args       []string
	EnqueuedAt time.Time
}

// Invocation joins base and the command's arguments with single spaces.
func (c Command) Invocation(base string) string {
	if len(c.Args) == 0 {
		return base
	}
	return base + " " + strings.Join(c.Args, " ")
}
