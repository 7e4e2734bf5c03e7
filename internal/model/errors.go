package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailExists         = errors.New("user with this email already exists")
	ErrIDNumberExists      = errors.New("user with this id number already exists")
	ErrCertificationExists = errors.New("umpire with this certification id already exists")
	ErrAlreadyPlayer       = errors.New("user is already registered as a player")
	ErrNotTeamAdmin        = errors.New("user is not a team admin")
	ErrNotClubAdmin        = errors.New("user is not a club admin")
	ErrNoPlayerProfile     = errors.New("player profile not found")
	ErrInvalidTeam         = errors.New("unknown team")
	ErrInvalidGroup        = errors.New("unknown group")

	// Receipt errors
	ErrReceiptNotFound = errors.New("receipt not found")

	// Media errors
	ErrBlobNotFound = errors.New("file not found")

	// QR errors
	ErrUnreadableQR = errors.New("qr code could not be read")
)
