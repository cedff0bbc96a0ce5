package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Supervised research agent",
	Long: `Sift runs research queries end to end: it decomposes a query into
tasks, gathers web research, synthesizes a structured analysis, generates
and executes visualization code when the data calls for it, and produces a
validated final report.

A supervisor loop routes each step from the accumulated run state and asks
the model to approve the final report, replanning with feedback when the
report falls short. Finished runs are recorded so later queries can reuse
task templates from similar past work.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare form: `sift "query"` behaves like `sift run "query"`.
		if len(args) > 0 {
			return runResearch(cmd, args)
		}
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
