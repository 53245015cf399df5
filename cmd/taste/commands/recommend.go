// ABOUTME: Recommendation commands for catalog items and accounts
// ABOUTME: Items ranked by affinity scores, accounts by device login frequency
package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tastekit/taste/internal/api"
	"github.com/tastekit/taste/internal/config"
	"github.com/tastekit/taste/internal/core"
	"github.com/tastekit/taste/internal/models"
	"github.com/tastekit/taste/internal/storage"
)

// NewRecommendCmd creates the recommend command
func NewRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <posts|recipes|products|users>",
		Short: "Recommend catalog items or accounts",
		Long: `Recommend catalog items for the logged-in user, or accounts for this device.

Item recommendations score each item on the current page by summing the
user's affinity for the item's keys. Already-liked items and items with
no positive affinity are dropped; the rest are listed highest first.

Account recommendations rank the accounts this device has logged into,
most frequent first.

Examples:
  taste recommend posts
  taste recommend recipes
  taste recommend users`,
		Args: cobra.ExactArgs(1),
		RunE: runRecommend,
	}
	addPagingFlags(cmd)
	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if args[0] == "users" || args[0] == "user" {
		return recommendUsers(cmd, cfg)
	}

	catalog, err := models.ParseCatalog(args[0])
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

	limit := pageLimit(cfg.PageLimit)
	if err := validatePositiveInt(limit, "limit"); err != nil {
		return err
	}

	ranked, err := recommendItems(cmd.Context(), newAPIClient(cfg), store, cfg, catalog, session.ID, limit)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return printJSON(cmd, map[string]interface{}{
			"catalog": catalog,
			"items":   ranked,
		})
	}

	if len(ranked) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s recommendations yet. Like a few %ss first.\n", catalog, catalog)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tID\tTITLE")
	for i, item := range ranked {
		fmt.Fprintf(w, "%d\t%d\t%s\n", i+1, item.ID, truncate(item.Title, 56))
	}
	_ = w.Flush()
	return nil
}

// rankedItem is one item recommendation for display
type rankedItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// recommendItems fetches one catalog page and ranks it against the
// user's affinity scores, dropping already-liked items.
func recommendItems(ctx context.Context, client *api.Client, store *storage.Storage, cfg *config.Config, catalog models.Catalog, userID, limit int) ([]rankedItem, error) {
	ids, keys, titles, err := fetchPageForRanking(ctx, client, catalog, limit, browseSkip)
	if err != nil {
		return nil, err
	}

	scores, err := store.Likes(catalog).Scores(userID)
	if err != nil {
		return nil, fmt.Errorf("loading affinity scores: %w", err)
	}
	excluded, err := store.LikedSet(catalog, userID)
	if err != nil {
		return nil, fmt.Errorf("loading liked items: %w", err)
	}

	ranked := core.RankByAffinity(ids, func(id int) []string { return keys[id] }, scores, excluded, cfg.RecommendedItems)

	items := make([]rankedItem, len(ranked))
	for i, id := range ranked {
		items[i] = rankedItem{ID: id, Title: titles[id]}
	}
	return items, nil
}

// fetchPageForRanking fetches one page of a catalog and flattens it into
// ranker inputs plus display titles.
func fetchPageForRanking(ctx context.Context, client *api.Client, catalog models.Catalog, limit, skip int) ([]int, map[int][]string, map[int]string, error) {
	ids := []int{}
	keys := make(map[int][]string)
	titles := make(map[int]string)

	switch catalog {
	case models.CatalogPost:
		page, err := client.FetchPosts(ctx, limit, skip)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, post := range page.Posts {
			ids = append(ids, post.ID)
			keys[post.ID] = post.AffinityKeys()
			titles[post.ID] = post.Title
		}
	case models.CatalogRecipe:
		page, err := client.FetchRecipes(ctx, limit, skip)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, recipe := range page.Recipes {
			ids = append(ids, recipe.ID)
			keys[recipe.ID] = recipe.AffinityKeys()
			titles[recipe.ID] = recipe.Name
		}
	case models.CatalogProduct:
		page, err := client.FetchProducts(ctx, limit, skip)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, product := range page.Products {
			ids = append(ids, product.ID)
			keys[product.ID] = product.AffinityKeys()
			titles[product.ID] = product.Title
		}
	default:
		return nil, nil, nil, fmt.Errorf("unknown catalog %q", catalog)
	}

	return ids, keys, titles, nil
}

// recommendUsers lists this device's most-selected accounts
func recommendUsers(cmd *cobra.Command, cfg *config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ids, err := store.RecommendedUserIDs(cfg.RecommendedUsers)
	if err != nil {
		return fmt.Errorf("ranking accounts: %w", err)
	}

	if jsonOutput() {
		return printJSON(cmd, map[string]interface{}{"users": ids})
	}

	if len(ids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No account suggestions yet. Log in to build a history.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Suggested accounts: %s\n", joinInts(ids))
	return nil
}
