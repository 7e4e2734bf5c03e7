package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/masego-dev/clubctl/internal/model"
)

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
	}

	cmd.AddCommand(newRegisterMemberCmd())
	cmd.AddCommand(newRegisterPlayerCmd())
	cmd.AddCommand(newRegisterTeamAdminCmd())
	cmd.AddCommand(newRegisterClubAdminCmd())
	cmd.AddCommand(newRegisterUmpireCmd())

	return cmd
}

// personFlags binds the registration fields shared by every role
func personFlags(cmd *cobra.Command, p *model.Person, password *string) {
	cmd.Flags().StringVar(&p.Email, "email", "", "Email address")
	cmd.Flags().StringVar(password, "password", "", "Password")
	cmd.Flags().StringVar(&p.FirstName, "fname", "", "First name")
	cmd.Flags().StringVar(&p.Surname, "sname", "", "Surname")
	cmd.Flags().StringVar(&p.IDNumber, "id-num", "", "National ID number")
	cmd.Flags().StringVar(&p.Contact, "contact", "", "Contact number (starts with 7, 8 digits)")
	cmd.Flags().StringVar(&p.DateOfBirth, "dob", "", "Date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.PostalAddress, "postal-add", "", "Postal address")
	cmd.Flags().StringVar(&p.ResidentialAddress, "residential-add", "", "Residential address")
	cmd.Flags().StringVar(&p.Nationality, "nationality", "", "Nationality")
}

// loadAttachment reads a file from disk for a multipart submission.
// An empty path yields nil so form validation reports the missing file.
func loadAttachment(path string) (*model.Attachment, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return model.NewAttachment(filepath.Base(path), data), nil
}

func newRegisterMemberCmd() *cobra.Command {
	var form model.MemberRegistration

	cmd := &cobra.Command{
		Use:   "member",
		Short: "Register as a club member",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := client.RegisterMember(cmd.Context(), form)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(msg)
			return nil
		},
	}

	personFlags(cmd, &form.Person, &form.Password)
	return cmd
}

func newRegisterClubAdminCmd() *cobra.Command {
	var form model.ClubAdminRegistration

	cmd := &cobra.Command{
		Use:   "club-admin",
		Short: "Register as a club administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := client.RegisterClubAdmin(cmd.Context(), form)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(msg)
			return nil
		},
	}

	personFlags(cmd, &form.Person, &form.Password)
	return cmd
}

func newRegisterUmpireCmd() *cobra.Command {
	var form model.UmpireRegistration

	cmd := &cobra.Command{
		Use:   "umpire",
		Short: "Register as an umpire",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := client.RegisterUmpire(cmd.Context(), form)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(msg)
			return nil
		},
	}

	personFlags(cmd, &form.Person, &form.Password)
	cmd.Flags().StringVar(&form.CertificationID, "certification-id", "", "Umpire certification ID")
	return cmd
}

func newRegisterPlayerCmd() *cobra.Command {
	var form model.PlayerRegistration
	var photoPath string

	cmd := &cobra.Command{
		Use:   "player",
		Short: "Register as a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			photo, err := loadAttachment(photoPath)
			if err != nil {
				return err
			}
			form.ProfilePhoto = photo

			msg, err := client.RegisterPlayer(cmd.Context(), form)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(msg)
			return nil
		},
	}

	personFlags(cmd, &form.Person, &form.Password)
	cmd.Flags().StringVar(&form.TeamName, "team", "", "Team name")
	cmd.Flags().StringVar(&form.Group, "group", "", "Group")
	cmd.Flags().StringVar(&photoPath, "photo", "", "Profile photo file")
	return cmd
}

func newRegisterTeamAdminCmd() *cobra.Command {
	var form model.TeamAdminRegistration
	var photoPath string

	cmd := &cobra.Command{
		Use:   "team-admin",
		Short: "Register as a team administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			photo, err := loadAttachment(photoPath)
			if err != nil {
				return err
			}
			form.ProfilePhoto = photo

			msg, err := client.RegisterTeamAdmin(cmd.Context(), form)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(msg)
			return nil
		},
	}

	personFlags(cmd, &form.Person, &form.Password)
	cmd.Flags().StringVar(&form.TeamName, "team", "", "Team name")
	cmd.Flags().StringVar(&form.Group, "group", "", "Group")
	cmd.Flags().StringVar(&photoPath, "photo", "", "Profile photo file")
	return cmd
}

func newBecomePlayerCmd() *cobra.Command {
	var req model.BecomePlayerRequest
	var photoPath string

	cmd := &cobra.Command{
		Use:   "become-player",
		Short: "Attach a player profile to the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			photo, err := loadAttachment(photoPath)
			if err != nil {
				return err
			}
			req.ProfilePhoto = photo

			msg, err := client.BecomePlayer(cmd.Context(), req)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.TeamName, "team", "", "Team name")
	cmd.Flags().StringVar(&req.Group, "group", "", "Group")
	cmd.Flags().BoolVar(&req.IsTeamAdmin, "team-admin", false, "Register as the team's admin")
	cmd.Flags().StringVar(&photoPath, "photo", "", "Profile photo file")
	return cmd
}
