package model

import "time"

// PlayerProfile is the playing extension of an account. An account with a
// profile is a player, or a team admin when the flag is set.
type PlayerProfile struct {
	TeamName    string
	Group       string
	IsTeamAdmin bool
	PhotoBlobID string
}

// Account is a registered user as stored by the backend.
// Role flags mirror the profile tables of the original system: one account
// may hold several (an umpire can also be a player).
type Account struct {
	ID           UserID
	Email        string
	PasswordHash string

	FirstName   string
	Surname     string
	IDNumber    string
	Contact     string
	DateOfBirth time.Time

	PostalAddress      string
	ResidentialAddress string
	Nationality        string

	IsClubAdmin     bool
	IsUmpire        bool
	CertificationID string
	IsMember        bool

	Player *PlayerProfile

	CreatedAt time.Time
}

// ResolveRole picks the role a login reports, and therefore which dashboard
// the user lands on. Precedence mirrors the original backend: club admin,
// then umpire, then team admin / player, falling back to member.
func (a *Account) ResolveRole() Role {
	switch {
	case a.IsClubAdmin:
		return RoleClubAdmin
	case a.IsUmpire:
		return RoleUmpire
	case a.Player != nil && a.Player.IsTeamAdmin:
		return RoleTeamAdmin
	case a.Player != nil:
		return RolePlayer
	default:
		return RoleMember
	}
}

// FullName joins first name and surname for display
func (a *Account) FullName() string {
	return a.FirstName + " " + a.Surname
}

// StoredReceipt is a receipt as persisted by the backend; file contents live
// in blob storage
type StoredReceipt struct {
	ID           ReceiptID
	PlayerID     UserID
	UploadedByID UserID
	FileBlobID   string
	Note         string
	Verified     bool
	UploadedAt   time.Time
	QRBlobID     string
}

// Blob is an uploaded file or generated QR payload
type Blob struct {
	ID          string
	ContentType string
	Filename    string
	Data        []byte
}
