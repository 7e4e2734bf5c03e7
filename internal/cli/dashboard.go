package cli

import (
	"github.com/spf13/cobra"

	"github.com/masego-dev/clubctl/internal/model"
)

func newQRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qr",
		Short: "Show the logged-in player's QR pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := client.QRCode(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if url == "" {
				out.PrintMessage("No QR pass yet: no verified receipt on record")
				return nil
			}
			out.PrintMessage(url)
			return nil
		},
	}
}

func newRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "List the players on your team",
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := client.Roster(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(roster)
			return nil
		},
	}
}

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all registered users (club admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := client.Users(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(users)
			return nil
		},
	}
}

func newReceiptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipts",
		Short: "Payment receipt commands",
	}

	cmd.AddCommand(newReceiptsListCmd())
	cmd.AddCommand(newReceiptsUploadCmd())
	cmd.AddCommand(newReceiptsVerifyCmd())

	return cmd
}

func newReceiptsListCmd() *cobra.Command {
	var unverifiedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List receipts grouped by group and team (club admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var receipts []model.Receipt
			var err error
			if unverifiedOnly {
				receipts, err = client.UnverifiedReceipts(cmd.Context())
			} else {
				receipts, err = client.Receipts(cmd.Context())
			}
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(model.GroupByTeam(receipts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unverifiedOnly, "unverified", false, "Only receipts awaiting verification")
	return cmd
}

func newReceiptsUploadCmd() *cobra.Command {
	var playerID, filePath, note string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a payment receipt for a player (team admin or umpire)",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadAttachment(filePath)
			if err != nil {
				return err
			}

			receipt, err := client.UploadReceipt(cmd.Context(), model.UserID(playerID), file, note)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(*receipt)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player user ID (required)")
	cmd.Flags().StringVar(&filePath, "file", "", "Receipt file")
	cmd.Flags().StringVar(&note, "note", "", "Free-text note")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

func newReceiptsVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <receipt-id>",
		Short: "Verify a receipt and mint the player's QR pass (club admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := client.VerifyReceipt(cmd.Context(), model.ReceiptID(args[0]))
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage(msg)
			return nil
		},
	}
}

func newScanCmd() *cobra.Command {
	var imagePath string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a player's QR pass and report payment status (umpire)",
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := loadAttachment(imagePath)
			if err != nil {
				return err
			}

			result, err := client.ScanQR(cmd.Context(), image)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "Captured QR image file")
	return cmd
}
