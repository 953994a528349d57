package admission

import (
	"context"
	"log/slog"
	"time"

	"github.com/mattjoyce/procpool/internal/census"
	"github.com/mattjoyce/procpool/internal/config"
	"github.com/mattjoyce/procpool/internal/log"
	"github.com/mattjoyce/procpool/internal/reaper"
)

//go:generate mockgen -destination=mocks/mock_admission.go -package=mocks github.com/mattjoyce/procpool/internal/admission Census,Reaper

// Census lists the running instances of the managed command.
type Census interface {
	Census(ctx context.Context) ([]census.Record, error)
}

// Reaper terminates a process that is older than maxAge.
type Reaper interface {
	Reap(rec census.Record, maxAge time.Duration) reaper.Outcome
}

// Result describes one availability check.
type Result struct {
	// Records is the census the check counted and reaped.
	Records    []census.Record
	Running    int
	Killed     int
	KillFailed int
	Available  bool
}

// Controller answers "may another process be launched now?". Every check
// reaps stale processes before it answers, so cleanup needs no loop of its own.
type Controller struct {
	census        Census
	reaper        Reaper
	maxConcurrent int
	maxAge        time.Duration
	logger        *slog.Logger
}

// New creates a Controller for the pool described by cfg. A nil logger uses
// the global logger.
func New(c Census, r Reaper, cfg config.PoolConfig, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = log.WithComponent("admission")
	} else {
		logger = logger.With("component", "admission")
	}

	return &Controller{
		census:        c,
		reaper:        r,
		maxConcurrent: cfg.MaxConcurrent,
		maxAge:        cfg.MaxProcessAge,
		logger:        logger,
	}
}

// SlotAvailable reports whether fewer than max_concurrent matching processes
// are running.
func (c *Controller) SlotAvailable(ctx context.Context) bool {
	return c.Check(ctx).Available
}

// Check runs a census, reaps every expired record, then compares the census
// size to the concurrency ceiling. A failed census counts as zero processes.
//
// The count is taken from the census, not from what survived reaping: a
// delivered signal does not mean the process has exited yet.
func (c *Controller) Check(ctx context.Context) Result {
	records, err := c.census.Census(ctx)
	if err != nil {
		c.logger.Warn("process census failed, assuming no running processes",
			"error", err,
			"consequence", "max_concurrent and max_process_age are not enforced for this check",
		)
		records = nil
	}

	res := Result{Records: records, Running: len(records)}
	for _, rec := range records {
		switch c.reaper.Reap(rec, c.maxAge) {
		case reaper.Killed:
			res.Killed++
		case reaper.KillFailed:
			res.KillFailed++
		}
	}

	res.Available = res.Running < c.maxConcurrent
	c.logger.Debug("slot check",
		"running", res.Running,
		"max_concurrent", c.maxConcurrent,
		"killed", res.Killed,
		"kill_failed", res.KillFailed,
		"available", res.Available,
	)
	return res
}
