// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Config loading, store/client construction, session gating, output helpers
package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tastekit/taste/internal/api"
	"github.com/tastekit/taste/internal/config"
	"github.com/tastekit/taste/internal/models"
	"github.com/tastekit/taste/internal/storage"
)

// loadConfig loads .env (if present) and the environment configuration
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load()
}

// newAPIClient builds a catalog client from the configuration
func newAPIClient(cfg *config.Config) *api.Client {
	return api.NewClient(&api.ClientConfig{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
}

// openStore opens the preference store under the configured data directory
func openStore(cfg *config.Config) (*storage.Storage, error) {
	return openStoreAt(cfg.DataDir)
}

func openStoreAt(dataDir string) (*storage.Storage, error) {
	store, err := storage.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return store, nil
}

// requireSession returns the saved session or an error telling the user to log in
func requireSession(cfg *config.Config) (*models.Session, error) {
	session, err := models.LoadSession(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("not logged in; run `taste login` first")
	}
	return session, nil
}

// jsonOutput reports whether the user asked for JSON output
func jsonOutput() bool {
	return outputFormat == "json"
}

// printJSON writes v as indented JSON to the command's stdout
func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
