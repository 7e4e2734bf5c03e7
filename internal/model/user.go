package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User is a listing entry as returned to club admins
type User struct {
	ID        UserID `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"fname"`
	Surname   string `json:"sname"`
	Contact   string `json:"contact,omitempty"`
	Role      Role   `json:"role"`
	TeamName  string `json:"team_name,omitempty"`
}

// RosterEntry is a player record scoped to the requester's team
type RosterEntry struct {
	ID           UserID    `json:"id"`
	FirstName    string    `json:"fname"`
	Surname      string    `json:"sname"`
	IDNumber     string    `json:"id_num"`
	Contact      string    `json:"contact"`
	DateOfBirth  time.Time `json:"dob"`
	Nationality  string    `json:"nationality"`
	TeamName     string    `json:"team_name"`
	Group        string    `json:"group"`
	IsTeamAdmin  bool      `json:"is_team_admin"`
	ProfilePhoto string    `json:"profile_photo,omitempty"`
}

// ScanResult is the payment-status snapshot produced by scanning a player's QR code
type ScanResult struct {
	FirstName       string `json:"fname"`
	Surname         string `json:"sname"`
	TeamName        string `json:"team_name"`
	ProfilePhotoURL string `json:"profile_photo_url"`
	PaymentStatus   string `json:"payment_status"`
}
