package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/masego-dev/clubctl/internal/api/middleware"
	"github.com/masego-dev/clubctl/internal/api/response"
	"github.com/masego-dev/clubctl/internal/model"
	"github.com/masego-dev/clubctl/internal/services/account"
)

const maxUploadSize = 10 << 20

// RegisterHandler handles the per-role registration endpoints
type RegisterHandler struct {
	accounts *account.Service
}

// NewRegisterHandler creates a new registration handler
func NewRegisterHandler(accounts *account.Service) *RegisterHandler {
	return &RegisterHandler{
		accounts: accounts,
	}
}

// Member handles POST /users/register/member/
func (h *RegisterHandler) Member(w http.ResponseWriter, r *http.Request) {
	var form model.MemberRegistration
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		WriteError(w, NewValidationError(errs))
		return
	}

	reg, err := registrationFields(form.Person, form.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.accounts.RegisterMember(r.Context(), reg); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.Confirmation{Message: "Registration successful"})
}

// ClubAdmin handles POST /users/register/club-admin/
func (h *RegisterHandler) ClubAdmin(w http.ResponseWriter, r *http.Request) {
	var form model.ClubAdminRegistration
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		WriteError(w, NewValidationError(errs))
		return
	}

	reg, err := registrationFields(form.Person, form.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.accounts.RegisterClubAdmin(r.Context(), reg); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.Confirmation{Message: "Registration successful"})
}

// Umpire handles POST /users/register/umpire/
func (h *RegisterHandler) Umpire(w http.ResponseWriter, r *http.Request) {
	var form model.UmpireRegistration
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		WriteError(w, NewValidationError(errs))
		return
	}

	reg, err := registrationFields(form.Person, form.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.accounts.RegisterUmpire(r.Context(), reg, form.CertificationID); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.Confirmation{Message: "Registration successful"})
}

// Player handles POST /users/register/player/ (multipart)
func (h *RegisterHandler) Player(w http.ResponseWriter, r *http.Request) {
	h.registerWithProfile(w, r, false)
}

// TeamAdmin handles POST /users/register/team-admin/ (multipart)
func (h *RegisterHandler) TeamAdmin(w http.ResponseWriter, r *http.Request) {
	h.registerWithProfile(w, r, true)
}

func (h *RegisterHandler) registerWithProfile(w http.ResponseWriter, r *http.Request, teamAdmin bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteError(w, NewInvalidRequestError("invalid multipart body"))
		return
	}

	photo, err := formAttachment(r, "profile_photo")
	if err != nil {
		WriteError(w, err)
		return
	}

	person := personFromForm(r)
	password := r.FormValue("password")
	teamName := r.FormValue("team_name")
	group := r.FormValue("group")

	var errs map[string]string
	if teamAdmin {
		errs = model.TeamAdminRegistration{
			Person:       person,
			Password:     password,
			TeamName:     teamName,
			Group:        group,
			ProfilePhoto: photo,
		}.Validate()
	} else {
		errs = model.PlayerRegistration{
			Person:       person,
			Password:     password,
			TeamName:     teamName,
			Group:        group,
			ProfilePhoto: photo,
		}.Validate()
	}
	if len(errs) > 0 {
		WriteError(w, NewValidationError(errs))
		return
	}

	reg, err := registrationFields(person, password)
	if err != nil {
		WriteError(w, err)
		return
	}

	details := account.PlayerDetails{
		TeamName:    teamName,
		Group:       group,
		IsTeamAdmin: teamAdmin,
		Photo:       photo,
	}
	if _, err := h.accounts.RegisterPlayer(r.Context(), reg, details); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.Confirmation{Message: "Registration successful"})
}

// BecomePlayer handles POST /users/become-player/ (multipart, authenticated)
func (h *RegisterHandler) BecomePlayer(w http.ResponseWriter, r *http.Request) {
	acct := middleware.MustGetAccount(r.Context())

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteError(w, NewInvalidRequestError("invalid multipart body"))
		return
	}

	photo, err := formAttachment(r, "profile_photo")
	if err != nil {
		WriteError(w, err)
		return
	}

	isTeamAdmin, _ := strconv.ParseBool(r.FormValue("is_team_admin"))
	form := model.BecomePlayerRequest{
		TeamName:     r.FormValue("team_name"),
		Group:        r.FormValue("group"),
		IsTeamAdmin:  isTeamAdmin,
		ProfilePhoto: photo,
	}
	if errs := form.Validate(); len(errs) > 0 {
		WriteError(w, NewValidationError(errs))
		return
	}

	details := account.PlayerDetails{
		TeamName:    form.TeamName,
		Group:       form.Group,
		IsTeamAdmin: form.IsTeamAdmin,
		Photo:       photo,
	}
	if _, err := h.accounts.BecomePlayer(r.Context(), acct.ID, details); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Confirmation{Message: "Player profile created"})
}

// personFromForm reads the shared registration fields out of a multipart form
func personFromForm(r *http.Request) model.Person {
	return model.Person{
		Email:              r.FormValue("email"),
		FirstName:          r.FormValue("fname"),
		Surname:            r.FormValue("sname"),
		IDNumber:           r.FormValue("id_num"),
		Contact:            r.FormValue("contact"),
		DateOfBirth:        r.FormValue("dob"),
		PostalAddress:      r.FormValue("postal_add"),
		ResidentialAddress: r.FormValue("residential_add"),
		Nationality:        r.FormValue("nationality"),
	}
}

// registrationFields maps a validated form onto the service input
func registrationFields(p model.Person, password string) (account.Registration, error) {
	dob, err := time.Parse("2006-01-02", p.DateOfBirth)
	if err != nil {
		return account.Registration{}, NewValidationError(map[string]string{
			"dob": "Date has wrong format. Use YYYY-MM-DD.",
		})
	}

	return account.Registration{
		Email:              p.Email,
		Password:           password,
		FirstName:          p.FirstName,
		Surname:            p.Surname,
		IDNumber:           p.IDNumber,
		Contact:            p.Contact,
		DateOfBirth:        dob,
		PostalAddress:      p.PostalAddress,
		ResidentialAddress: p.ResidentialAddress,
		Nationality:        p.Nationality,
	}, nil
}

// formAttachment reads one uploaded file out of a multipart form.
// A missing file is not an error here; form validation reports it with the
// field message the client shows.
func formAttachment(r *http.Request, field string) (*model.Attachment, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, NewInvalidRequestError("invalid multipart body")
	}
	defer func(c multipart.File) { _ = c.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, NewInvalidRequestError("could not read uploaded file")
	}

	attachment := model.NewAttachment(header.Filename, data)
	if ct := header.Header.Get("Content-Type"); ct != "" {
		attachment.ContentType = ct
	}
	return attachment, nil
}
