// ABOUTME: Profile command shows the logged-in user's affinity scores
// ABOUTME: Optional LLM-written taste summary when an OpenAI key is configured
package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tastekit/taste/internal/core"
	"github.com/tastekit/taste/internal/llm"
	"github.com/tastekit/taste/internal/models"
)

var profileSummary bool

// NewProfileCmd creates the profile command
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your taste profile",
		Long: `Show the logged-in user's affinity scores per catalog.

Every like bumps the score of each of the item's keys by one; the
profile is those accumulated scores, strongest first.

With --summary and an OPENAI_API_KEY, a one-paragraph natural-language
description of your tastes is generated as well.`,
		Args: cobra.NoArgs,
		RunE: runProfile,
	}
	cmd.Flags().BoolVar(&profileSummary, "summary", false, "Generate a natural-language taste summary")
	return cmd
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := requireSession(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	scoresByCatalog := make(map[models.Catalog]map[string]int)
	for _, catalog := range models.Catalogs() {
		scores, err := store.Likes(catalog).Scores(session.ID)
		if err != nil {
			return fmt.Errorf("loading %s scores: %w", catalog, err)
		}
		scoresByCatalog[catalog] = scores
	}

	if jsonOutput() {
		return printJSON(cmd, map[string]interface{}{
			"user":   session.User(),
			"scores": scoresByCatalog,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Taste profile for %s (%s)\n", session.User().FullName(), session.Username)
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in %s\n\n", formatTime(session.LoginAt))

	empty := true
	for _, catalog := range models.Catalogs() {
		scores := scoresByCatalog[catalog]
		if len(scores) == 0 {
			continue
		}
		empty = false

		fmt.Fprintf(cmd.OutOrStdout(), "%ss\n", catalog)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, ks := range sortScores(scores) {
			fmt.Fprintf(w, "  %s\t%d\n", ks.key, ks.score)
		}
		_ = w.Flush()
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if empty {
		fmt.Fprintln(cmd.OutOrStdout(), "No likes yet. Try `taste like post 5`.")
		return nil
	}

	if profileSummary {
		summary, err := generateSummary(cmd, cfg.OpenAIKey, scoresByCatalog)
		if err != nil {
			return err
		}
		if summary != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", summary)
		}
	}

	return nil
}

type keyScore struct {
	key   string
	score int
}

// sortScores orders a score map highest first, ties by key
func sortScores(scores map[string]int) []keyScore {
	ranked := make([]keyScore, 0, len(scores))
	for key, score := range scores {
		ranked = append(ranked, keyScore{key, score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].key < ranked[j].key
	})
	return ranked
}

func generateSummary(cmd *cobra.Command, apiKey string, scoresByCatalog map[models.Catalog]map[string]int) (string, error) {
	if apiKey == "" {
		if verbose {
			fmt.Fprintln(os.Stderr, "Warning: OPENAI_API_KEY not set, skipping summary")
		}
		return "", nil
	}

	client, err := llm.NewClient(apiKey)
	if err != nil {
		return "", fmt.Errorf("initializing OpenAI client: %w", err)
	}

	summary, err := core.NewSummarizer(client).Summarize(cmd.Context(), scoresByCatalog)
	if err != nil {
		return "", err
	}
	return summary, nil
}
