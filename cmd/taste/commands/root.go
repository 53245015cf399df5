// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all taste subcommands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
░▒▓████████▓▒░▒▓██████▓▒░ ░▒▓███████▓▒░▒▓████████▓▒░▒▓████████▓▒░
   ░▒▓█▓▒░  ░▒▓█▓▒░▒▓█▓▒░▒▓█▓▒░      ░▒▓█▓▒░      ░▒▓█▓▒░
   ░▒▓█▓▒░  ░▒▓████████▓▒░░▒▓██████▓▒░░▒▓██████▓▒░░▒▓██████▓▒░
   ░▒▓█▓▒░  ░▒▓█▓▒░▒▓█▓▒░      ░▒▓█▓▒░      ░▒▓█▓▒░      ▒▓█▓▒░
   ░▒▓█▓▒░  ░▒▓█▓▒░▒▓█▓▒░▒▓███████▓▒░░▒▓████████▓▒░▒▓████████▓▒░
███`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taste",
		Short: "Browse catalogs and get recommendations from your likes",
		Long: banner + `

taste is a catalog browser for the DummyJSON demo API with a
local-first recommendation engine. Likes are recorded per user in a
device-local SQLite database and aggregated into affinity scores per
tag, category, cuisine, and meal type; recommendations rank unliked
items by those scores. Nothing leaves your machine.

Start with:
  taste login -u emilys -p emilyspass
  taste posts
  taste like post 5
  taste recommend posts`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, or json")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Subcommands
	rootCmd.AddCommand(
		NewLoginCmd(),
		NewLogoutCmd(),
		NewPostsCmd(),
		NewRecipesCmd(),
		NewProductsCmd(),
		NewUsersCmd(),
		NewLikeCmd(),
		NewUnlikeCmd(),
		NewLikedCmd(),
		NewRecommendCmd(),
		NewProfileCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
