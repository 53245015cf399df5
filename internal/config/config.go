// ABOUTME: Centralized configuration for the taste CLI
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the taste system
type Config struct {
	// Catalog API settings
	APIBaseURL  string
	HTTPTimeout time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	PageLimit   int

	// Recommendation settings
	RecommendedItems int
	RecommendedUsers int

	// Local data settings
	DataDir string

	// OpenAI settings (optional, taste summaries only)
	OpenAIKey string
	ChatModel string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		APIBaseURL:       getEnv("TASTE_API_URL", "https://dummyjson.com"),
		HTTPTimeout:      getEnvDuration("TASTE_HTTP_TIMEOUT", 15*time.Second),
		MaxRetries:       getEnvInt("TASTE_HTTP_MAX_RETRIES", 3),
		RetryDelay:       getEnvDuration("TASTE_RETRY_DELAY", time.Second),
		PageLimit:        getEnvInt("TASTE_PAGE_LIMIT", 20),
		RecommendedItems: getEnvInt("TASTE_RECOMMENDED_ITEMS", 6),
		RecommendedUsers: getEnvInt("TASTE_RECOMMENDED_USERS", 3),
		DataDir:          getEnv("TASTE_DATA_DIR", defaultDataDir()),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		ChatModel:        getEnv("TASTE_OPENAI_MODEL", "gpt-4o-mini"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("TASTE_API_URL must not be empty")
	}
	if c.PageLimit < 1 || c.PageLimit > 100 {
		return fmt.Errorf("TASTE_PAGE_LIMIT must be 1-100, got %d", c.PageLimit)
	}
	if c.RecommendedItems < 1 || c.RecommendedItems > 50 {
		return fmt.Errorf("TASTE_RECOMMENDED_ITEMS must be 1-50, got %d", c.RecommendedItems)
	}
	if c.RecommendedUsers < 1 || c.RecommendedUsers > 50 {
		return fmt.Errorf("TASTE_RECOMMENDED_USERS must be 1-50, got %d", c.RecommendedUsers)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("TASTE_HTTP_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// defaultDataDir returns the XDG data directory for taste
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/taste"
		}
		dataHome = homeDir + "/.local/share"
	}
	return dataHome + "/taste"
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
