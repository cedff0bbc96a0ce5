// Package config handles configuration loading for sift. It supports XDG
// config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for sift.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Firecrawl FirecrawlConfig `mapstructure:"firecrawl"`
	Supabase  SupabaseConfig  `mapstructure:"supabase"`
	History   HistoryConfig   `mapstructure:"history"`
	Run       RunConfig       `mapstructure:"run"`
	Sandbox   SandboxConfig   `mapstructure:"sandbox"`
}

// AnthropicConfig holds Anthropic API settings for the main model calls.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
	// UseBedrock routes calls through AWS Bedrock instead of the direct API.
	UseBedrock bool   `mapstructure:"use_bedrock"`
	AWSRegion  string `mapstructure:"aws_region"`
	AWSProfile string `mapstructure:"aws_profile"`
}

// OpenAIConfig holds OpenAI settings, used for query embeddings.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// FirecrawlConfig holds web-search settings.
type FirecrawlConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// SupabaseConfig holds artifact-storage settings.
type SupabaseConfig struct {
	URL    string `mapstructure:"url"`
	Key    string `mapstructure:"key"`
	Bucket string `mapstructure:"bucket"`
}

// HistoryConfig holds execution-history settings.
type HistoryConfig struct {
	// DBPath overrides the default XDG data location of the history database.
	DBPath string `mapstructure:"db_path"`
	// Disabled turns off history recording and planner context entirely.
	Disabled bool `mapstructure:"disabled"`
}

// RunConfig holds orchestration settings.
type RunConfig struct {
	// MaxRevisions bounds how many rejected reports trigger a replan.
	MaxRevisions int `mapstructure:"max_revisions"`
	// RetryAttempts bounds model-call retries on transport failure.
	RetryAttempts int `mapstructure:"retry_attempts"`
	// RetryBackoff is the fixed delay between retry attempts.
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// SandboxConfig holds code-execution settings.
type SandboxConfig struct {
	// Python is the interpreter binary used to run generated code.
	Python string `mapstructure:"python"`
}

// Load loads configuration from XDG paths, project overrides, and environment
// variables. Precedence (highest to lowest):
// 1. Environment variables (SIFT_*, plus the provider key variables)
// 2. Project config (.sift.yaml in current directory or parent)
// 3. User config (~/.config/sift/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("SIFT")
	v.AutomaticEnv()

	// Provider keys keep their conventional variable names.
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("firecrawl.api_key", "FIRECRAWL_API_KEY")
	v.BindEnv("supabase.url", "SUPABASE_URL")
	v.BindEnv("supabase.key", "SUPABASE_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	cfg.OpenAI.APIKey = expandEnv(cfg.OpenAI.APIKey)
	cfg.Firecrawl.APIKey = expandEnv(cfg.Firecrawl.APIKey)
	cfg.Supabase.Key = expandEnv(cfg.Supabase.Key)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	cfg.OpenAI.APIKey = expandEnv(cfg.OpenAI.APIKey)
	cfg.Firecrawl.APIKey = expandEnv(cfg.Firecrawl.APIKey)
	cfg.Supabase.Key = expandEnv(cfg.Supabase.Key)

	return cfg, nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("anthropic.use_bedrock", false)

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "")

	v.SetDefault("firecrawl.api_key", "")
	v.SetDefault("firecrawl.base_url", "")
	v.SetDefault("firecrawl.max_results", 5)
	v.SetDefault("firecrawl.timeout", "60s")

	v.SetDefault("supabase.bucket", "visualizations")

	v.SetDefault("history.db_path", "")
	v.SetDefault("history.disabled", false)

	v.SetDefault("run.max_revisions", 3)
	v.SetDefault("run.retry_attempts", 3)
	v.SetDefault("run.retry_backoff", "2s")

	v.SetDefault("sandbox.python", "python3")
}

// getUserConfigDir returns the XDG config directory for sift.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "sift")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "sift")
	}
	return filepath.Join(home, ".config", "sift")
}

// findProjectConfig searches for .sift.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".sift.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet-4-20250514",
		},
		Firecrawl: FirecrawlConfig{
			MaxResults: 5,
			Timeout:    60 * time.Second,
		},
		Supabase: SupabaseConfig{
			Bucket: "visualizations",
		},
		Run: RunConfig{
			MaxRevisions:  3,
			RetryAttempts: 3,
			RetryBackoff:  2 * time.Second,
		},
		Sandbox: SandboxConfig{
			Python: "python3",
		},
	}
}
