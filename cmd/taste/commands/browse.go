// ABOUTME: Catalog browsing commands for posts, recipes, products, and users
// ABOUTME: Paginated tables with liked marks and device-level account suggestions
package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tastekit/taste/internal/config"
	"github.com/tastekit/taste/internal/core"
	"github.com/tastekit/taste/internal/models"
)

var (
	browseLimit int
	browseSkip  int
)

func addPagingFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&browseLimit, "limit", 0, "Page size (default from TASTE_PAGE_LIMIT)")
	cmd.Flags().IntVar(&browseSkip, "skip", 0, "Number of items to skip")
}

// NewPostsCmd creates the posts listing command
func NewPostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse blog posts",
		Args:  cobra.NoArgs,
		RunE:  runPosts,
	}
	addPagingFlags(cmd)
	return cmd
}

func runPosts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit := pageLimit(cfg.PageLimit)
	if err := validatePositiveInt(limit, "limit"); err != nil {
		return err
	}

	page, err := newAPIClient(cfg).FetchPosts(cmd.Context(), limit, browseSkip)
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd, page)
	}

	liked := likedSetForBrowse(cfg.DataDir, models.CatalogPost)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  \tID\tTITLE\tTAGS\tVIEWS")
	ids, keys, titles := []int{}, map[int][]string{}, map[int]string{}
	for _, post := range page.Posts {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\n",
			likedMark(liked[post.ID]),
			post.ID,
			truncate(post.Title, 48),
			truncate(strings.Join(post.Tags, ","), 32),
			post.Views,
		)
		ids = append(ids, post.ID)
		keys[post.ID] = post.AffinityKeys()
		titles[post.ID] = post.Title
	}
	_ = w.Flush()

	printRecommendedSection(cmd, cfg, models.CatalogPost, ids, keys, titles)
	printPageFooter(cmd, len(page.Posts), page.Skip, page.Total)
	return nil
}

// NewRecipesCmd creates the recipes listing command
func NewRecipesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Browse recipes",
		Args:  cobra.NoArgs,
		RunE:  runRecipes,
	}
	addPagingFlags(cmd)
	return cmd
}

func runRecipes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit := pageLimit(cfg.PageLimit)
	if err := validatePositiveInt(limit, "limit"); err != nil {
		return err
	}

	page, err := newAPIClient(cfg).FetchRecipes(cmd.Context(), limit, browseSkip)
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd, page)
	}

	liked := likedSetForBrowse(cfg.DataDir, models.CatalogRecipe)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  \tID\tNAME\tCUISINE\tMEAL\tRATING")
	ids, keys, titles := []int{}, map[int][]string{}, map[int]string{}
	for _, recipe := range page.Recipes {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%.1f\n",
			likedMark(liked[recipe.ID]),
			recipe.ID,
			truncate(recipe.Name, 40),
			recipe.Cuisine,
			truncate(strings.Join(recipe.MealType, ","), 24),
			recipe.Rating,
		)
		ids = append(ids, recipe.ID)
		keys[recipe.ID] = recipe.AffinityKeys()
		titles[recipe.ID] = recipe.Name
	}
	_ = w.Flush()

	printRecommendedSection(cmd, cfg, models.CatalogRecipe, ids, keys, titles)
	printPageFooter(cmd, len(page.Recipes), page.Skip, page.Total)
	return nil
}

// NewProductsCmd creates the products listing command
func NewProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse products",
		Args:  cobra.NoArgs,
		RunE:  runProducts,
	}
	addPagingFlags(cmd)
	return cmd
}

func runProducts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit := pageLimit(cfg.PageLimit)
	if err := validatePositiveInt(limit, "limit"); err != nil {
		return err
	}

	page, err := newAPIClient(cfg).FetchProducts(cmd.Context(), limit, browseSkip)
	if err != nil {
		return err
	}
	if jsonOutput() {
		return printJSON(cmd, page)
	}

	liked := likedSetForBrowse(cfg.DataDir, models.CatalogProduct)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  \tID\tTITLE\tCATEGORY\tPRICE\tRATING")
	ids, keys, titles := []int{}, map[int][]string{}, map[int]string{}
	for _, product := range page.Products {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t$%.2f\t%.1f\n",
			likedMark(liked[product.ID]),
			product.ID,
			truncate(product.Title, 40),
			product.Category,
			product.Price,
			product.Rating,
		)
		ids = append(ids, product.ID)
		keys[product.ID] = product.AffinityKeys()
		titles[product.ID] = product.Title
	}
	_ = w.Flush()

	printRecommendedSection(cmd, cfg, models.CatalogProduct, ids, keys, titles)
	printPageFooter(cmd, len(page.Products), page.Skip, page.Total)
	return nil
}

// NewUsersCmd creates the user directory command
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Browse the user directory",
		Long: `List user accounts from the catalog API.

Accounts this device has logged into most often are marked with ★ and
listed first in a "Suggested accounts" section.`,
		Args: cobra.NoArgs,
		RunE: runUsers,
	}
	addPagingFlags(cmd)
	return cmd
}

func runUsers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit := pageLimit(cfg.PageLimit)
	if err := validatePositiveInt(limit, "limit"); err != nil {
		return err
	}

	page, err := newAPIClient(cfg).FetchUsers(cmd.Context(), limit, browseSkip)
	if err != nil {
		return err
	}

	suggested := suggestedUserIDs(cfg.DataDir, cfg.RecommendedUsers)

	if jsonOutput() {
		return printJSON(cmd, struct {
			Users     []models.User `json:"users"`
			Suggested []int         `json:"suggested"`
			Total     int           `json:"total"`
			Skip      int           `json:"skip"`
			Limit     int           `json:"limit"`
		}{page.Users, suggested, page.Total, page.Skip, page.Limit})
	}

	suggestedSet := make(map[int]bool, len(suggested))
	for _, id := range suggested {
		suggestedSet[id] = true
	}

	if len(suggested) > 0 && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Suggested accounts: %s\n\n",
			joinInts(suggested))
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  \tID\tNAME\tUSERNAME\tEMAIL")
	for _, user := range page.Users {
		mark := " "
		if suggestedSet[user.ID] {
			mark = "★"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			mark,
			user.ID,
			truncate(user.FullName(), 32),
			user.Username,
			truncate(user.Email, 36),
		)
	}
	_ = w.Flush()

	printPageFooter(cmd, len(page.Users), page.Skip, page.Total)
	return nil
}

// printRecommendedSection ranks the already-fetched page against the
// logged-in user's affinity and prints the top picks. Best effort: no
// session, no scores, or a broken store just means no section.
func printRecommendedSection(cmd *cobra.Command, cfg *config.Config, catalog models.Catalog, ids []int, keys map[int][]string, titles map[int]string) {
	if quiet {
		return
	}

	session, err := models.LoadSession(cfg.DataDir)
	if err != nil || session == nil {
		return
	}

	store, err := openStoreAt(cfg.DataDir)
	if err != nil {
		return
	}
	defer func() { _ = store.Close() }()

	scores, err := store.Likes(catalog).Scores(session.ID)
	if err != nil {
		return
	}
	excluded, err := store.LikedSet(catalog, session.ID)
	if err != nil {
		return
	}

	ranked := core.RankByAffinity(ids, func(id int) []string { return keys[id] }, scores, excluded, cfg.RecommendedItems)
	if len(ranked) == 0 {
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nRecommended for you:")
	for i, id := range ranked {
		fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s (id %d)\n", i+1, truncate(titles[id], 56), id)
	}
}

// pageLimit resolves the effective page size from the flag and config default
func pageLimit(configDefault int) int {
	if browseLimit > 0 {
		return browseLimit
	}
	return configDefault
}

func likedMark(liked bool) string {
	if liked {
		return "♥"
	}
	return " "
}

// likedSetForBrowse loads the logged-in user's liked ids for a catalog.
// Returns an empty set on any failure: browsing never requires a session
// or a healthy local database.
func likedSetForBrowse(dataDir string, catalog models.Catalog) map[int]bool {
	session, err := models.LoadSession(dataDir)
	if err != nil || session == nil {
		return map[int]bool{}
	}

	store, err := openStoreAt(dataDir)
	if err != nil {
		return map[int]bool{}
	}
	defer func() { _ = store.Close() }()

	set, err := store.LikedSet(catalog, session.ID)
	if err != nil {
		return map[int]bool{}
	}
	return set
}

// suggestedUserIDs returns this device's most-selected account ids.
// Best effort: an unreadable store yields no suggestions.
func suggestedUserIDs(dataDir string, limit int) []int {
	store, err := openStoreAt(dataDir)
	if err != nil {
		return nil
	}
	defer func() { _ = store.Close() }()

	ids, err := store.RecommendedUserIDs(limit)
	if err != nil {
		return nil
	}
	return ids
}

func printPageFooter(cmd *cobra.Command, shown, skip, total int) {
	if quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d-%d of %d\n", skip+1, skip+shown, total)
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}
