package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/procpool/internal/admission"
	"github.com/mattjoyce/procpool/internal/census"
	"github.com/mattjoyce/procpool/internal/config"
	"github.com/mattjoyce/procpool/internal/log"
	"github.com/mattjoyce/procpool/internal/reaper"
)

func newCensusCmd(root *rootOptions) *cobra.Command {
	var reap bool

	cmd := &cobra.Command{
		Use:   "census",
		Short: "List running instances of the base command",
		Long: `census prints every running process that matches the configured base
command, with its age. With --reap it also terminates stale instances,
exactly as a dispatcher slot check would.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(root.configPath)
			if err != nil {
				return err
			}
			logger := log.New(cmd.ErrOrStderr(), cfg.Service.LogLevel, cfg.Service.LogFormat)

			c := census.NewPS(cfg.Pool.BaseCommand, logger)
			out := cmd.OutOrStdout()

			if !reap {
				records, err := c.Census(cmd.Context())
				if err != nil {
					return err
				}
				printCensus(out, records, cfg.Pool.MaxProcessAge, time.Now())
				printSlots(out, len(records), cfg.Pool.MaxConcurrent)
				return nil
			}

			ctrl := admission.New(c, reaper.New(reaper.SignalTerminator{}, logger), cfg.Pool, logger)
			res := ctrl.Check(cmd.Context())
			printReapResult(out, res, cfg.Pool, time.Now())
			return nil
		},
	}
	cmd.Flags().BoolVar(&reap, "reap", false, "terminate instances older than max_process_age")
	return cmd
}

// printReapResult reports one admission check: the table and counts all come
// from the census that check acted on.
func printReapResult(w io.Writer, res admission.Result, pool config.PoolConfig, now time.Time) {
	printCensus(w, res.Records, pool.MaxProcessAge, now)
	fmt.Fprintf(w, "killed %d, kill failed %d\n", res.Killed, res.KillFailed)
	printSlots(w, res.Running, pool.MaxConcurrent)
}

func printSlots(w io.Writer, running, maxConcurrent int) {
	free := maxConcurrent - running
	if free < 0 {
		free = 0
	}
	fmt.Fprintf(w, "%d running, %d of %d slots free\n", running, free, maxConcurrent)
}

func printCensus(w io.Writer, records []census.Record, maxAge time.Duration, now time.Time) {
	if len(records) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tSTARTED\tAGE\tSTALE\tCOMMAND")
	for _, r := range records {
		age := r.Age(now).Truncate(time.Second)
		stale := ""
		if age > maxAge {
			stale = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.PID, r.StartTime.Format(time.DateTime), age, stale, r.CommandLine)
	}
	_ = tw.Flush()
}
