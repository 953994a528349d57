// Package reaper terminates processes that have outlived their time budget.
//
// A Reaper is handed census records one at a time. Records younger than the
// allowed age are left alone. Older ones get a termination signal through a
// Terminator, and the outcome is logged. A failed termination is never an
// error: the process will show up in the next census and be tried again.
package reaper

import (
	"log/slog"
	"time"

	"github.com/mattjoyce/procpool/internal/census"
	"github.com/mattjoyce/procpool/internal/log"
)

// Outcome is the result of a single reap attempt.
type Outcome int

const (
	NotExpired Outcome = iota
	Killed
	KillFailed
)

func (o Outcome) String() string {
	switch o {
	case NotExpired:
		return "not_expired"
	case Killed:
		return "killed"
	case KillFailed:
		return "kill_failed"
	default:
		return "unknown"
	}
}

// Terminator delivers a termination request to a pid. It reports whether the
// request was delivered, which does not mean the process has exited.
type Terminator interface {
	Terminate(pid int) bool
}

// TerminatorFunc adapts a function to the Terminator interface.
type TerminatorFunc func(pid int) bool

// Terminate calls f.
func (f TerminatorFunc) Terminate(pid int) bool {
	return f(pid)
}

// Reaper decides whether a process is stale and terminates it if so.
type Reaper struct {
	terminator Terminator
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Reaper.
type Option func(*Reaper)

// WithClock overrides the wall clock used to age processes.
func WithClock(now func() time.Time) Option {
	return func(r *Reaper) {
		r.now = now
	}
}

// New creates a Reaper. A nil terminator falls back to SignalTerminator and a
// nil logger to the global logger.
func New(t Terminator, logger *slog.Logger, opts ...Option) *Reaper {
	if t == nil {
		t = SignalTerminator{}
	}
	if logger == nil {
		logger = log.WithComponent("reaper")
	} else {
		logger = logger.With("component", "reaper")
	}

	r := &Reaper{
		terminator: t,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reap terminates rec if it has been running for longer than maxAge.
func (r *Reaper) Reap(rec census.Record, maxAge time.Duration) Outcome {
	age := rec.Age(r.now())
	if age <= maxAge {
		return NotExpired
	}

	if r.terminator.Terminate(rec.PID) {
		r.logger.Info("process over time and was killed", "pid", rec.PID, "age", age, "max_age", maxAge)
		return Killed
	}

	r.logger.Info("unable to kill process", "pid", rec.PID, "age", age, "max_age", maxAge)
	return KillFailed
}
