package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/procpool/internal/config"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	var expect string

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate configuration",
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the config file and print its fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, hash, err := loadConfig(root.configPath)
			if err != nil {
				return err
			}
			if expect != "" {
				if err := config.VerifyFileHash(configFile(root.configPath), expect); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "OK %s\n", root.configPath)
			fmt.Fprintf(out, "blake3: %s\n", hash)
			fmt.Fprintf(out, "base_command: %s\n", cfg.Pool.BaseCommand)
			fmt.Fprintf(out, "max_concurrent: %d\n", cfg.Pool.MaxConcurrent)
			fmt.Fprintf(out, "poll_interval: %s\n", cfg.Pool.PollInterval)
			fmt.Fprintf(out, "max_process_age: %s\n", cfg.Pool.MaxProcessAge)
			fmt.Fprintf(out, "poll_limit: %d\n", cfg.Pool.PollLimit)
			fmt.Fprintf(out, "output_sink: %s\n", cfg.Pool.OutputSink)
			fmt.Fprintf(out, "lock: %s\n", lockPathFor(cfg, ""))
			for i, args := range cfg.Commands {
				fmt.Fprintf(out, "commands[%d]: %s\n", i, strings.Join(args, " "))
			}
			return nil
		},
	}

	checkCmd.Flags().StringVar(&expect, "expect", "", "fail unless the config file has this blake3 hash")

	configCmd.AddCommand(checkCmd)
	return configCmd
}
