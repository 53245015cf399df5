// ABOUTME: Login and logout commands for the catalog API session
// ABOUTME: Persists the session locally and records the selection for account suggestions
package commands

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tastekit/taste/internal/models"
)

var (
	loginUsername string
	loginPassword string
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the catalog API",
		Long: `Authenticate against the catalog API and save the session locally.

Likes and recommendations are scoped to the logged-in user. The chosen
account is also remembered per device so frequent accounts can be
suggested on the next login.

Examples:
  taste login -u emilys -p emilyspass
  taste login --username emilys   (prompts for the password)`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}

	cmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	username := strings.TrimSpace(loginUsername)
	if username == "" {
		return fmt.Errorf("username is required (use -u)")
	}

	password := loginPassword
	if password == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = string(raw)
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	client := newAPIClient(cfg)
	session, err := client.Login(cmd.Context(), username, password)
	if err != nil {
		return err
	}

	if err := session.Save(cfg.DataDir); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	// Selection logging is best effort; a broken local DB should not
	// block the login itself.
	if store, err := openStore(cfg); err == nil {
		if err := store.RecordSelection(session.ID); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "Warning: could not record account selection: %v\n", err)
		}
		_ = store.Close()
	} else if verbose {
		fmt.Fprintf(os.Stderr, "Warning: could not open preference store: %v\n", err)
	}

	if jsonOutput() {
		return printJSON(cmd, session.User())
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s (%s, id %d)\n",
			session.Username, session.User().FullName(), session.ID)
	}
	return nil
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := models.ClearSession(cfg.DataDir); err != nil {
				return fmt.Errorf("clearing session: %w", err)
			}
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Logged out")
			}
			return nil
		},
	}
}
