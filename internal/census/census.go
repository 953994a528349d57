package census

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/mattjoyce/procpool/internal/log"
)

// Census enumerates running processes that belong to one base command.
type Census interface {
	Census(ctx context.Context) ([]Record, error)
}

// PSCensus counts processes by filtering the process table for a base command
// the way `grep -w` would.
type PSCensus struct {
	baseCommand string
	matcher     *regexp.Regexp
	lister      Lister
	selfPID     int
	logger      *slog.Logger
}

// Option configures a PSCensus.
type Option func(*PSCensus)

// WithLister replaces the process-table source.
func WithLister(l Lister) Option {
	return func(c *PSCensus) {
		c.lister = l
	}
}

// WithSelfPID sets the pid that is never counted. Defaults to os.Getpid().
func WithSelfPID(pid int) Option {
	return func(c *PSCensus) {
		c.selfPID = pid
	}
}

// NewPS creates a census for baseCommand backed by ps(1). A nil logger uses
// the global logger.
func NewPS(baseCommand string, logger *slog.Logger, opts ...Option) *PSCensus {
	if logger == nil {
		logger = log.WithComponent("census")
	} else {
		logger = logger.With("component", "census")
	}

	c := &PSCensus{
		baseCommand: baseCommand,
		matcher:     wordMatcher(baseCommand),
		lister:      PSLister{},
		selfPID:     os.Getpid(),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Census returns every matching process once. Lines that match the search
// term but cannot be parsed are logged and left out of the result.
func (c *PSCensus) Census(ctx context.Context) ([]Record, error) {
	lines, err := c.lister.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	records := make([]Record, 0, len(lines))
	seen := make(map[int]struct{}, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" || !c.matcher.MatchString(line) {
			continue
		}

		rec, err := ParseLine(line)
		if err != nil {
			c.logger.Info("unmatchable process found by census, investigate immediately",
				"line", line,
				"search_term", c.baseCommand,
				"error", err,
			)
			continue
		}

		if rec.PID == c.selfPID {
			continue
		}
		if _, dup := seen[rec.PID]; dup {
			continue
		}
		seen[rec.PID] = struct{}{}
		records = append(records, rec)
	}

	c.logger.Debug("census complete", "search_term", c.baseCommand, "running", len(records))
	return records, nil
}

// wordMatcher matches term only where it is not embedded in a longer word.
// Word characters are letters, digits and underscore, as with grep -w.
func wordMatcher(term string) *regexp.Regexp {
	return regexp.MustCompile(`(^|\W)` + regexp.QuoteMeta(term) + `(\W|$)`)
}
