// Package response builds the JSON bodies the API returns. The wire types
// themselves live in the model package; this package maps stored accounts and
// receipts onto them.
package response

import (
	"github.com/masego-dev/clubctl/internal/model"
)

// UserSummary is the user block embedded in a login response
type UserSummary struct {
	Email     string     `json:"email"`
	FirstName string     `json:"fname"`
	Surname   string     `json:"sname"`
	Role      model.Role `json:"role"`
}

// Login is the response to a successful login
type Login struct {
	Refresh string      `json:"refresh"`
	Access  string      `json:"access"`
	User    UserSummary `json:"user"`
}

// Refresh is the response to a token refresh
type Refresh struct {
	Access string `json:"access"`
}

// Confirmation carries a human-readable success message
type Confirmation struct {
	Message string `json:"message"`
}

// QRCode reports the URL of a player's QR pass, null when none exists
type QRCode struct {
	URL *string `json:"qr_code"`
}

// LoginFromAccount builds a login response for an authenticated account
func LoginFromAccount(account *model.Account, role model.Role, access, refresh string) Login {
	return Login{
		Refresh: refresh,
		Access:  access,
		User: UserSummary{
			Email:     account.Email,
			FirstName: account.FirstName,
			Surname:   account.Surname,
			Role:      role,
		},
	}
}

// UserFromAccount builds a listing entry
func UserFromAccount(account *model.Account) model.User {
	user := model.User{
		ID:        account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		Surname:   account.Surname,
		Contact:   account.Contact,
		Role:      account.ResolveRole(),
	}
	if account.Player != nil {
		user.TeamName = account.Player.TeamName
	}
	return user
}

// UsersFromAccounts builds a listing for several accounts
func UsersFromAccounts(accounts []*model.Account) []model.User {
	users := make([]model.User, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, UserFromAccount(a))
	}
	return users
}

// RosterEntryFromAccount builds a roster record for a player account
func RosterEntryFromAccount(account *model.Account) model.RosterEntry {
	entry := model.RosterEntry{
		ID:          account.ID,
		FirstName:   account.FirstName,
		Surname:     account.Surname,
		IDNumber:    account.IDNumber,
		Contact:     account.Contact,
		DateOfBirth: account.DateOfBirth,
		Nationality: account.Nationality,
	}
	if account.Player != nil {
		entry.TeamName = account.Player.TeamName
		entry.Group = account.Player.Group
		entry.IsTeamAdmin = account.Player.IsTeamAdmin
		entry.ProfilePhoto = MediaURL(account.Player.PhotoBlobID)
	}
	return entry
}

// RosterFromAccounts builds roster records for several accounts
func RosterFromAccounts(accounts []*model.Account) []model.RosterEntry {
	roster := make([]model.RosterEntry, 0, len(accounts))
	for _, a := range accounts {
		roster = append(roster, RosterEntryFromAccount(a))
	}
	return roster
}

// ReceiptFromStored builds a receipt listing entry. The player and uploader
// accounts supply the display names and team placement; either may be nil
// when the referenced account no longer resolves.
func ReceiptFromStored(receipt *model.StoredReceipt, player, uploader *model.Account) model.Receipt {
	out := model.Receipt{
		ID:           receipt.ID,
		PlayerID:     receipt.PlayerID,
		UploadedByID: receipt.UploadedByID,
		FileURL:      MediaURL(receipt.FileBlobID),
		Note:         receipt.Note,
		Verified:     receipt.Verified,
		UploadedAt:   receipt.UploadedAt,
		QRCodeURL:    MediaURL(receipt.QRBlobID),
	}
	if player != nil {
		out.PlayerName = player.FullName()
		if player.Player != nil {
			out.TeamName = player.Player.TeamName
			out.Group = player.Player.Group
		}
	}
	if uploader != nil {
		out.UploadedByName = uploader.FullName()
	}
	return out
}

// ScanResultFromAccount builds the payment-status snapshot a QR scan returns
func ScanResultFromAccount(account *model.Account, paid bool) model.ScanResult {
	result := model.ScanResult{
		FirstName:     account.FirstName,
		Surname:       account.Surname,
		PaymentStatus: "Not paid",
	}
	if paid {
		result.PaymentStatus = "Paid"
	}
	if account.Player != nil {
		result.TeamName = account.Player.TeamName
		result.ProfilePhotoURL = MediaURL(account.Player.PhotoBlobID)
	}
	return result
}

// MediaURL maps a blob id onto its download path, "" for no blob
func MediaURL(blobID string) string {
	if blobID == "" {
		return ""
	}
	return "/media/" + blobID
}
