package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/procpool/internal/admission"
	"github.com/mattjoyce/procpool/internal/census"
	"github.com/mattjoyce/procpool/internal/config"
	"github.com/mattjoyce/procpool/internal/dispatch"
	"github.com/mattjoyce/procpool/internal/lock"
	"github.com/mattjoyce/procpool/internal/log"
	"github.com/mattjoyce/procpool/internal/queue"
	"github.com/mattjoyce/procpool/internal/reaper"
)

type runOptions struct {
	lockPath string
	noLock   bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [-- args...]",
		Short: "Dispatch the configured commands, plus one built from trailing args",
		Example: `  procpool run -c procpool.yaml
  procpool run -c procpool.yaml -- --job 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(cmd, root, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.lockPath, "lock", "", "lock file path (overrides lock.path)")
	cmd.Flags().BoolVar(&opts.noLock, "no-lock", false, "do not take the single-instance lock")
	return cmd
}

func runDispatch(cmd *cobra.Command, root *rootOptions, opts *runOptions, extra []string) error {
	cfg, hash, err := loadConfig(root.configPath)
	if err != nil {
		return err
	}

	logger := log.New(cmd.OutOrStdout(), cfg.Service.LogLevel, cfg.Service.LogFormat).
		With("service", cfg.Service.Name)
	logger.Info("config loaded", "config", root.configPath, "config_hash", hash)

	if !opts.noLock {
		path := lockPathFor(cfg, opts.lockPath)
		l, err := lock.AcquirePIDLock(path)
		if err != nil {
			return fmt.Errorf("acquire dispatcher lock %s: %w", path, err)
		}
		defer func() {
			if err := l.Release(); err != nil {
				logger.Warn("failed to release lock", "path", l.Path(), "error", err)
			}
		}()
		logger.Debug("lock acquired", "path", l.Path())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := newDispatcher(cfg.Pool, logger)
	for _, args := range cfg.Commands {
		d.Enqueue(args...)
	}
	if len(extra) > 0 {
		d.Enqueue(extra...)
	}

	d.Execute(ctx)
	logger.Info("dispatch finished", "pending", d.Pending())
	logLeftovers(logger, d.Queued(), time.Now())
	return nil
}

func logLeftovers(logger *slog.Logger, cmds []queue.Command, now time.Time) {
	for _, c := range cmds {
		logger.Info("command left queued",
			"command_id", c.ID,
			"args", c.Args,
			"enqueued_at", c.EnqueuedAt,
			"queued_for", now.Sub(c.EnqueuedAt),
		)
	}
}

// newDispatcher wires the production census, reaper and launcher together.
func newDispatcher(pool config.PoolConfig, logger *slog.Logger) *dispatch.Dispatcher {
	c := census.NewPS(pool.BaseCommand, logger)
	r := reaper.New(reaper.SignalTerminator{}, logger)
	slots := admission.New(c, r, pool, logger)
	return dispatch.New(pool, slots, dispatch.DetachedLauncher{}, logger)
}

func loadConfig(path string) (*config.Config, string, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}

	hash, err := config.ComputeBlake3Hash(configFile(path))
	if err != nil {
		return nil, "", fmt.Errorf("fingerprint config: %w", err)
	}
	return cfg, hash, nil
}

// configFile resolves a directory argument to the config.yaml inside it.
func configFile(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, "config.yaml")
	}
	return path
}

func lockPathFor(cfg *config.Config, override string) string {
	if override != "" {
		return override
	}
	if cfg.Lock.Path != "" {
		return cfg.Lock.Path
	}
	return lock.DefaultPath(cfg.Pool.BaseCommand)
}
