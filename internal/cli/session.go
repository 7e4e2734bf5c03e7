package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Logout(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session's role",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			sess, ok := client.Sessions().Current()
			if !ok {
				out.PrintMessage("Not logged in")
				return nil
			}

			if cfg.Output == "json" {
				out.Print(map[string]string{
					"role":      string(sess.Role),
					"dashboard": sess.Role.Dashboard(),
				})
				return nil
			}
			fmt.Printf("Role: %s\n", sess.Role)
			fmt.Printf("Dashboard: %s\n", sess.Role.Dashboard())
			return nil
		},
	}
}
