package model

import "github.com/masego-dev/clubctl/internal/validate"

// Person holds the registration fields common to every role's form.
// Validation messages mirror the ones shown on the forms; see the validate
// package for the rule definitions.
type Person struct {
	Email              string `json:"email" validate:"required,email"`
	FirstName          string `json:"fname" validate:"required,alpha"`
	Surname            string `json:"sname" validate:"required,alpha"`
	IDNumber           string `json:"id_num" validate:"notblank"`
	Contact            string `json:"contact" validate:"required,contact"`
	DateOfBirth        string `json:"dob" validate:"required,dobrange"`
	PostalAddress      string `json:"postal_add"`
	ResidentialAddress string `json:"residential_add"`
	Nationality        string `json:"nationality"`
}

// MemberRegistration is the draft for the member form.
// The member form is one of the two that enforce a password minimum.
type MemberRegistration struct {
	Person
	Password string `json:"password" validate:"required,min=8"`
}

// Validate returns the field error map for the draft; empty means submittable
func (f MemberRegistration) Validate() map[string]string {
	return validate.Fields(f)
}

// ClubAdminRegistration is the draft for the club admin form
type ClubAdminRegistration struct {
	Person
	Password string `json:"password" validate:"required"`
}

// Validate returns the field error map for the draft; empty means submittable
func (f ClubAdminRegistration) Validate() map[string]string {
	return validate.Fields(f)
}

// UmpireRegistration is the draft for the umpire form
type UmpireRegistration struct {
	Person
	Password        string `json:"password" validate:"required"`
	CertificationID string `json:"umpire_certification_id" validate:"notblank"`
}

// Validate returns the field error map for the draft; empty means submittable
func (f UmpireRegistration) Validate() map[string]string {
	return validate.Fields(f)
}

// PlayerRegistration is the draft for the player form.
// The player form accepts any non-empty password; that asymmetry with the
// member and team admin forms is kept as observed in production.
type PlayerRegistration struct {
	Person
	Password     string      `json:"password" validate:"required"`
	TeamName     string      `json:"team_name"`
	Group        string      `json:"group"`
	ProfilePhoto *Attachment `json:"-"`
}

// Validate returns the field error map for the draft; empty means submittable
func (f PlayerRegistration) Validate() map[string]string {
	errs := validate.Fields(f)
	requirePhoto(errs, f.ProfilePhoto)
	return errs
}

// TeamAdminRegistration is the draft for the team admin form
type TeamAdminRegistration struct {
	Person
	Password     string      `json:"password" validate:"required,min=8"`
	TeamName     string      `json:"team_name" validate:"required"`
	Group        string      `json:"group"`
	ProfilePhoto *Attachment `json:"-"`
}

// Validate returns the field error map for the draft; empty means submittable
func (f TeamAdminRegistration) Validate() map[string]string {
	errs := validate.Fields(f)
	requirePhoto(errs, f.ProfilePhoto)
	return errs
}

// BecomePlayerRequest is the draft for the become-player flow, available to
// logged-in club admins and umpires
type BecomePlayerRequest struct {
	TeamName     string      `json:"team_name" validate:"required"`
	Group        string      `json:"group" validate:"required"`
	IsTeamAdmin  bool        `json:"is_team_admin"`
	ProfilePhoto *Attachment `json:"-"`
}

// Validate returns the field error map for the draft; empty means submittable
func (f BecomePlayerRequest) Validate() map[string]string {
	errs := validate.Fields(f)
	requirePhoto(errs, f.ProfilePhoto)
	return errs
}

func requirePhoto(errs map[string]string, photo *Attachment) {
	if photo == nil || len(photo.Data) == 0 {
		errs["profile_photo"] = "Profile photo is required"
	} else if !photo.IsImage() {
		errs["profile_photo"] = "Profile photo must be an image"
	}
}
