// ABOUTME: Optional natural-language taste summaries from affinity scores
// ABOUTME: Best-effort LLM call; everything else works without it
package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tastekit/taste/internal/models"
)

const summarySystemPrompt = "You are a concise assistant. Given a user's liked " +
	"tags, categories, and cuisines from a catalog app, write one short paragraph " +
	"describing their tastes. No lists, no preamble, no second person plural."

// topKeysPerCatalog bounds how much of the score map goes into the prompt
const topKeysPerCatalog = 10

// ChatClient is the completion surface the summarizer needs
type ChatClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Summarizer turns per-catalog affinity scores into a readable taste profile
type Summarizer struct {
	client ChatClient
}

// NewSummarizer creates a Summarizer
func NewSummarizer(client ChatClient) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize produces a one-paragraph taste description from the user's
// affinity scores. Returns "" without error when there is nothing to
// summarize.
func (s *Summarizer) Summarize(ctx context.Context, scoresByCatalog map[models.Catalog]map[string]int) (string, error) {
	prompt := buildSummaryPrompt(scoresByCatalog)
	if prompt == "" {
		return "", nil
	}

	summary, err := s.client.Complete(ctx, summarySystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("generating taste summary: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

// buildSummaryPrompt renders the strongest affinity keys per catalog,
// highest score first, ties by key so the prompt is deterministic.
func buildSummaryPrompt(scoresByCatalog map[models.Catalog]map[string]int) string {
	var b strings.Builder

	for _, catalog := range models.Catalogs() {
		scores := scoresByCatalog[catalog]
		if len(scores) == 0 {
			continue
		}

		type keyScore struct {
			key   string
			score int
		}
		ranked := make([]keyScore, 0, len(scores))
		for key, score := range scores {
			if score > 0 {
				ranked = append(ranked, keyScore{key, score})
			}
		}
		if len(ranked) == 0 {
			continue
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].score != ranked[j].score {
				return ranked[i].score > ranked[j].score
			}
			return ranked[i].key < ranked[j].key
		})
		if len(ranked) > topKeysPerCatalog {
			ranked = ranked[:topKeysPerCatalog]
		}

		fmt.Fprintf(&b, "%ss:", catalog)
		for _, ks := range ranked {
			fmt.Fprintf(&b, " %s(%d)", ks.key, ks.score)
		}
		b.WriteString("\n")
	}

	return b.String()
}
