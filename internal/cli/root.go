// Package cli implements the clubctl command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/masego-dev/clubctl/internal/client"
	"github.com/masego-dev/clubctl/internal/session"
)

var (
	cfg    *Config
	client *apiclient.Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clubctl",
		Short: "CLI tool for the club management API",
		Long: `clubctl is a CLI tool for interacting with the club management API.

It covers registration for every role (member, player, team admin, club
admin, umpire), login with persistent sessions, and the per-role dashboard
views: QR passes, team rosters, payment receipts, and user listings.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := LoadConfig()
			if err != nil {
				return err
			}

			// Flags override the environment when set
			if cmd.Flags().Changed("server") {
				loaded.ServerURL = cfg.ServerURL
			}
			if cmd.Flags().Changed("session-file") {
				loaded.SessionFile = cfg.SessionFile
			}
			if cmd.Flags().Changed("output") {
				loaded.Output = cfg.Output
			}
			if cmd.Flags().Changed("verbose") {
				loaded.Verbose = cfg.Verbose
			}
			cfg = loaded

			client = apiclient.New(cfg.ServerURL, session.NewFileStore(cfg.SessionFile))
			return nil
		},
		SilenceUsage: true,
	}

	cfg = &Config{}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CLUBCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "Session file path (env: CLUBCTL_SESSION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newBecomePlayerCmd())
	rootCmd.AddCommand(newQRCmd())
	rootCmd.AddCommand(newRosterCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newReceiptsCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
