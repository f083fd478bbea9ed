package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Catalog
	EpisodesPath         string // primary episodes.json location
	EpisodesFallbackPath string

	// Generation engine
	OpenAIAPIKey  string
	OpenAIBaseURL string // optional, for Azure-style or proxied deployments
	DailyModel    string
	MoodModel     string

	// Publication target
	GitHubToken  string
	GitHubRepo   string // "owner/name"
	GitHubBranch string
	PublishPath  string

	// Events feed
	FeedBaseURL string

	// Run log
	HistoryPath string

	// Server & scheduling
	ListenAddr string
	DailyRunAt string // "HH:MM" UTC

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		EpisodesPath:         getEnv("EPISODES_PATH", "api/episodes.json"),
		EpisodesFallbackPath: getEnv("EPISODES_FALLBACK_PATH", "data/episodes.json"),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", ""),
		DailyModel:           getEnv("DAILY_MODEL", "gpt-5.1"),
		MoodModel:            getEnv("MOOD_MODEL", "gpt-5-nano"),
		GitHubToken:          getEnv("GITHUB_TOKEN", ""),
		GitHubRepo:           getEnv("GITHUB_REPO", "sednafm/sednafm.github.io"),
		GitHubBranch:         getEnv("GITHUB_BRANCH", "main"),
		PublishPath:          getEnv("PUBLISH_PATH", "data/daily_match.json"),
		FeedBaseURL:          getEnv("FEED_BASE_URL", ""),
		HistoryPath:          getEnv("HISTORY_PATH", "data/aircurator.db"),
		ListenAddr:           getEnv("LISTEN_ADDR", ":8080"),
		DailyRunAt:           getEnv("DAILY_RUN_AT", "23:01"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	if _, err := time.Parse("15:04", cfg.DailyRunAt); err != nil {
		return nil, fmt.Errorf("invalid DAILY_RUN_AT: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.EpisodesPath == "" {
		return fmt.Errorf("EPISODES_PATH is required")
	}
	return nil
}

// ValidateForCuration checks configuration needed for any generation call.
func (c *Config) ValidateForCuration() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required for curation")
	}
	return nil
}

// ValidateForPublish checks configuration needed to commit the daily artifact.
func (c *Config) ValidateForPublish() error {
	if c.GitHubToken == "" {
		return fmt.Errorf("GITHUB_TOKEN is required for publishing")
	}
	if c.GitHubRepo == "" {
		return fmt.Errorf("GITHUB_REPO is required for publishing")
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode.
func (c *Config) ValidateForServe() error {
	if err := c.ValidateForCuration(); err != nil {
		return err
	}
	return c.ValidateForPublish()
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
