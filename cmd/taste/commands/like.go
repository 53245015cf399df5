// ABOUTME: Like, unlike, and liked commands for catalog items
// ABOUTME: Likes update the logged-in user's per-key affinity scores
package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tastekit/taste/internal/models"
)

// NewLikeCmd creates the like command
func NewLikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <catalog> <id>",
		Short: "Like a catalog item",
		Long: `Record a like for the logged-in user.

The like bumps the user's affinity score for each of the item's keys:
a post contributes its tags, a product its category and tags, a recipe
its tags, cuisine, and meal types. Liking an already-liked item again
counts those keys once more.

Examples:
  taste like post 5
  taste like recipe 12
  taste like product 3`,
		Args: cobra.ExactArgs(2),
		RunE: runLike,
	}
}

func runLike(cmd *cobra.Command, args []string) error {
	catalog, id, err := parseCatalogAndID(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := requireSession(cfg)
	if err != nil {
		return err
	}

	keys, err := newAPIClient(cfg).FetchItemKeys(cmd.Context(), catalog, id)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Likes(catalog).AddLike(session.ID, id, keys); err != nil {
		return fmt.Errorf("recording like: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "♥ Liked %s %d (keys: %d)\n", catalog, id, len(keys))
	}
	return nil
}

// NewUnlikeCmd creates the unlike command
func NewUnlikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlike <catalog> <id>",
		Short: "Remove a like from a catalog item",
		Long: `Remove the logged-in user's like from an item.

The item stops being excluded from recommendations, but the affinity
scores its like contributed stay: a past like keeps counting as an
interest signal.`,
		Args: cobra.ExactArgs(2),
		RunE: runUnlike,
	}
}

func runUnlike(cmd *cobra.Command, args []string) error {
	catalog, id, err := parseCatalogAndID(args)
	if err != nil {
		return err
	}

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

	if err := store.Likes(catalog).RemoveLike(session.ID, id); err != nil {
		return fmt.Errorf("removing like: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Unliked %s %d\n", catalog, id)
	}
	return nil
}

// NewLikedCmd creates the liked command
func NewLikedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "liked [catalog]",
		Short: "List liked item ids",
		Long: `List the logged-in user's liked item ids, per catalog.

With no argument, all three catalogs are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLiked,
	}
}

func runLiked(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := requireSession(cfg)
	if err != nil {
		return err
	}

	catalogs := models.Catalogs()
	if len(args) == 1 {
		catalog, err := models.ParseCatalog(args[0])
		if err != nil {
			return err
		}
		catalogs = []models.Catalog{catalog}
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	liked := make(map[models.Catalog][]int, len(catalogs))
	for _, catalog := range catalogs {
		ids, err := store.Likes(catalog).LikedIDs(session.ID)
		if err != nil {
			return fmt.Errorf("listing liked %ss: %w", catalog, err)
		}
		liked[catalog] = ids
	}

	if jsonOutput() {
		return printJSON(cmd, liked)
	}

	for _, catalog := range catalogs {
		ids := liked[catalog]
		if len(ids) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%ss: none\n", catalog)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%ss: %s\n", catalog, joinInts(ids))
	}
	return nil
}

// parseCatalogAndID parses the common "<catalog> <id>" argument pair
func parseCatalogAndID(args []string) (models.Catalog, int, error) {
	catalog, err := models.ParseCatalog(args[0])
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		return "", 0, fmt.Errorf("invalid item id %q", args[1])
	}
	if err := validatePositiveInt(id, "item id"); err != nil {
		return "", 0, err
	}
	return catalog, id, nil
}
