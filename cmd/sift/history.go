package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/siftlabs/sift/internal/config"
	"github.com/siftlabs/sift/internal/history"
)

var historyRecent int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs and aggregate metrics",
	Long: `Show the execution history: recent runs with their outcome, plus
aggregate success rates per task type. The same history feeds the planner
with templates from similar past queries.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyRecent, "recent", 10, "Number of recent runs to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbPath := cfg.History.DBPath
	if dbPath == "" {
		dbPath = history.DefaultDBPath()
	}
	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("migrating history store: %w", err)
	}

	metrics, err := store.Metrics()
	if err != nil {
		return fmt.Errorf("reading metrics: %w", err)
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Println("Execution History")
	header.Println("=================")
	fmt.Printf("Total runs:      %d\n", metrics.TotalExecutions)
	fmt.Printf("Successful runs: %d\n", metrics.SuccessfulExecutions)
	if len(metrics.SuccessRateByType) > 0 {
		fmt.Println("\nSuccess rate by task type:")
		for taskType, rate := range metrics.SuccessRateByType {
			fmt.Printf("  %-16s %5.1f%%  (%d tasks)\n", taskType, rate*100, metrics.TaskTypeCounts[taskType])
		}
	}

	runs, err := store.Recent(historyRecent)
	if err != nil {
		return fmt.Errorf("reading recent runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("\nNo recorded runs yet.")
		return nil
	}

	fmt.Printf("\nLast %d runs:\n", len(runs))
	success := color.New(color.FgGreen)
	failure := color.New(color.FgRed)
	for _, run := range runs {
		mark := success.Sprint("✓")
		if !run.Success {
			mark = failure.Sprint("✗")
		}
		fmt.Printf("  %s %s  %s\n", mark, run.Timestamp.Format("2006-01-02 15:04"), run.Query)
		if run.Feedback != "" {
			fmt.Printf("      feedback: %s\n", run.Feedback)
		}
	}

	return nil
}
