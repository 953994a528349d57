package dispatch

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/mattjoyce/procpool/internal/config"
	"github.com/mattjoyce/procpool/internal/log"
	"github.com/mattjoyce/procpool/internal/queue"
)

//go:generate mockgen -destination=mocks/mock_dispatch.go -package=mocks github.com/mattjoyce/procpool/internal/dispatch SlotChecker,Launcher

// SlotChecker reports whether another process may be launched now.
type SlotChecker interface {
	SlotAvailable(ctx context.Context) bool
}

// Launcher starts a command line in the background. A nil error means the OS
// accepted the process, nothing more.
type Launcher interface {
	Launch(ctx context.Context, commandLine, sink string) error
}

// Dispatcher owns a command queue and launches its entries one by one as
// slots become available.
type Dispatcher struct {
	cfg      config.PoolConfig
	queue    *queue.Queue
	slots    SlotChecker
	launcher Launcher
	logger   *slog.Logger
	wait     func(ctx context.Context, d time.Duration) error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithWait replaces the poll-interval wait. The default is an interruptible
// timer that returns ctx.Err() on cancellation.
func WithWait(wait func(ctx context.Context, d time.Duration) error) Option {
	return func(d *Dispatcher) {
		d.wait = wait
	}
}

// New creates a Dispatcher. A nil logger uses the global logger.
func New(cfg config.PoolConfig, slots SlotChecker, launcher Launcher, logger *slog.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = log.WithComponent("dispatch")
	} else {
		logger = logger.With("component", "dispatch")
	}

	d := &Dispatcher{
		cfg:      cfg,
		queue:    queue.New(),
		slots:    slots,
		launcher: launcher,
		logger:   logger,
		wait:     sleepContext,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.logger.Info("pool instantiated",
		"pid", os.Getpid(),
		"base_command", cfg.BaseCommand,
		"max_concurrent", cfg.MaxConcurrent,
		"poll_interval", cfg.PollInterval,
		"max_process_age", cfg.MaxProcessAge,
		"poll_limit", cfg.PollLimit,
	)
	return d
}

// Enqueue appends one command's arguments and returns its ID.
func (d *Dispatcher) Enqueue(args ...string) string {
	return d.queue.Enqueue(args).ID
}

// Pending returns the number of commands not yet dispatched.
func (d *Dispatcher) Pending() int {
	return d.queue.Len()
}

// Queued returns the commands not yet dispatched, in dispatch order.
func (d *Dispatcher) Queued() []queue.Command {
	return d.queue.Snapshot()
}

// Execute dispatches the commands queued at the time of the call, in order.
// It returns once they are all launched, when the poll limit is hit for one
// of them, or when ctx is cancelled during a wait.
func (d *Dispatcher) Execute(ctx context.Context) {
	for _, cmd := range d.queue.Snapshot() {
		if !d.dispatch(ctx, cmd) {
			return
		}
	}
}

// dispatch waits for a slot and launches cmd. It returns false when the rest
// of the queue must not be attempted.
func (d *Dispatcher) dispatch(ctx context.Context, cmd queue.Command) bool {
	full := cmd.Invocation(d.cfg.BaseCommand)
	logger := d.logger.With(slog.String("command_id", cmd.ID))

	logger.Info("checking for slot", "command", full)

	polls := 0
	for !d.slots.SlotAvailable(ctx) {
		logger.Info("no available slot, pausing before checking again", "poll_interval", d.cfg.PollInterval)
		if err := d.wait(ctx, d.cfg.PollInterval); err != nil {
			logger.Info("dispatch interrupted while waiting for slot", "error", err, "pending", d.queue.Len())
			return false
		}

		polls++
		if polls > d.cfg.PollLimit {
			d.queue.Remove(cmd.ID)
			attrs := []any{
				"command", full,
				"polls", polls,
				"poll_limit", d.cfg.PollLimit,
				"pending", d.queue.Len(),
			}
			if next, ok := d.queue.Peek(); ok {
				attrs = append(attrs, "next_command_id", next.ID)
			}
			logger.Info("hit poll limit, stopping dispatch", attrs...)
			return false
		}
	}

	logger.Info("found slot", "command", full, "polls", polls)
	if err := d.launcher.Launch(ctx, full, d.cfg.OutputSink); err != nil {
		logger.Error("launch failed", "command", full, "error", err)
	}
	d.queue.Remove(cmd.ID)
	return true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
