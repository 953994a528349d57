package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "procpool",
		Short: "procpool - bounded-concurrency dispatcher for background commands",
		Long: `procpool launches queued invocations of one base command as detached
background processes, never running more than max_concurrent at once, and
terminates instances that outlive max_process_age.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "procpool.yaml", "path to the config file (or a directory containing config.yaml)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of procpool",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "procpool version %s\n", version)
		},
	}

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newCensusCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(versionCmd)
	return rootCmd
}
