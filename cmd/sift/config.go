package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siftlabs/sift/internal/config"
	"github.com/siftlabs/sift/internal/history"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		fmt.Printf("config file:        %s\n", config.GetUserConfigPath())
		fmt.Printf("anthropic.model:    %s\n", cfg.Anthropic.Model)
		fmt.Printf("anthropic.api_key:  %s\n", config.MaskAPIKey(cfg.Anthropic.APIKey))
		fmt.Printf("anthropic.bedrock:  %v\n", cfg.Anthropic.UseBedrock)
		fmt.Printf("openai.api_key:     %s\n", config.MaskAPIKey(cfg.OpenAI.APIKey))
		fmt.Printf("firecrawl.api_key:  %s\n", config.MaskAPIKey(cfg.Firecrawl.APIKey))
		fmt.Printf("supabase.url:       %s\n", cfg.Supabase.URL)
		fmt.Printf("supabase.bucket:    %s\n", cfg.Supabase.Bucket)

		dbPath := cfg.History.DBPath
		if dbPath == "" {
			dbPath = history.DefaultDBPath()
		}
		fmt.Printf("history.db_path:    %s\n", dbPath)
		fmt.Printf("history.disabled:   %v\n", cfg.History.Disabled)
		fmt.Printf("run.max_revisions:  %d\n", cfg.Run.MaxRevisions)
		fmt.Printf("run.retry_attempts: %d\n", cfg.Run.RetryAttempts)
		fmt.Printf("sandbox.python:     %s\n", cfg.Sandbox.Python)

		return nil
	},
}
