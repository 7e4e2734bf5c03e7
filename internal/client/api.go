package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/masego-dev/clubctl/internal/model"
	"github.com/masego-dev/clubctl/internal/session"
)

// AccountSummary is the user block the backend returns on login
type AccountSummary struct {
	Email     string     `json:"email"`
	FirstName string     `json:"fname"`
	Surname   string     `json:"sname"`
	Role      model.Role `json:"role"`
}

// LoginResult is the outcome of a successful login
type LoginResult struct {
	AccessToken  string         `json:"access"`
	RefreshToken string         `json:"refresh"`
	User         AccountSummary `json:"user"`
}

// ErrMissingCredentials is returned when login is attempted with a blank
// email or password; no other format validation applies to login
var ErrMissingCredentials = errors.New("email and password are required")

// Login authenticates and, on success, populates the session store with the
// returned token pair and role
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	var result LoginResult
	err := c.doJSON(ctx, http.MethodPost, "/users/login/", map[string]string{
		"email":    email,
		"password": password,
	}, &result, false)
	if err != nil {
		return nil, err
	}

	if err := c.sessions.Save(session.Session{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Role:         result.User.Role,
	}); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &result, nil
}

// Logout destroys the stored session
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

// confirmation is the {"message": ...} body registration endpoints return
type confirmation struct {
	Message string `json:"message"`
}

// RegisterMember submits the member registration form. The draft is
// validated locally first; an invalid draft produces FieldErrors and no
// network request.
func (c *Client) RegisterMember(ctx context.Context, form model.MemberRegistration) (string, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return "", FieldErrors(errs)
	}
	return c.register(ctx, "/users/register/member/", form)
}

// RegisterClubAdmin submits the club admin registration form
func (c *Client) RegisterClubAdmin(ctx context.Context, form model.ClubAdminRegistration) (string, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return "", FieldErrors(errs)
	}
	return c.register(ctx, "/users/register/club-admin/", form)
}

// RegisterUmpire submits the umpire registration form
func (c *Client) RegisterUmpire(ctx context.Context, form model.UmpireRegistration) (string, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return "", FieldErrors(errs)
	}
	return c.register(ctx, "/users/register/umpire/", form)
}

// register submits a JSON registration form
func (c *Client) register(ctx context.Context, path string, form any) (string, error) {
	var result confirmation
	if err := c.doJSON(ctx, http.MethodPost, path, form, &result, false); err != nil {
		return "", normalizeConflicts(err)
	}
	return result.Message, nil
}

// RegisterPlayer submits the player registration form as multipart because
// of the attached profile photo
func (c *Client) RegisterPlayer(ctx context.Context, form model.PlayerRegistration) (string, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return "", FieldErrors(errs)
	}

	fields := personFields(form.Person, form.Password)
	fields["team_name"] = form.TeamName
	fields["group"] = form.Group

	return c.registerMultipart(ctx, "/users/register/player/", fields, form.ProfilePhoto, false)
}

// RegisterTeamAdmin submits the team admin registration form
func (c *Client) RegisterTeamAdmin(ctx context.Context, form model.TeamAdminRegistration) (string, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return "", FieldErrors(errs)
	}

	fields := personFields(form.Person, form.Password)
	fields["team_name"] = form.TeamName
	fields["group"] = form.Group

	return c.registerMultipart(ctx, "/users/register/team-admin/", fields, form.ProfilePhoto, false)
}

// BecomePlayer attaches a player profile to the logged-in user (available to
// club admins and umpires)
func (c *Client) BecomePlayer(ctx context.Context, req model.BecomePlayerRequest) (string, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return "", FieldErrors(errs)
	}

	fields := map[string]string{
		"team_name":     req.TeamName,
		"group":         req.Group,
		"is_team_admin": strconv.FormatBool(req.IsTeamAdmin),
	}

	return c.registerMultipart(ctx, "/users/become-player/", fields, req.ProfilePhoto, true)
}

func (c *Client) registerMultipart(ctx context.Context, path string, fields map[string]string, photo *model.Attachment, authenticated bool) (string, error) {
	var result confirmation
	files := []FormFile{{Field: "profile_photo", Attachment: photo}}
	if err := c.doMultipart(ctx, http.MethodPost, path, fields, files, &result, authenticated); err != nil {
		return "", normalizeConflicts(err)
	}
	return result.Message, nil
}

// personFields flattens the shared registration fields into multipart form
// values under their wire names
func personFields(p model.Person, password string) map[string]string {
	return map[string]string{
		"email":           p.Email,
		"password":        password,
		"fname":           p.FirstName,
		"sname":           p.Surname,
		"id_num":          p.IDNumber,
		"contact":         p.Contact,
		"dob":             p.DateOfBirth,
		"postal_add":      p.PostalAddress,
		"residential_add": p.ResidentialAddress,
		"nationality":     p.Nationality,
	}
}

// QRCode fetches the current user's QR code reference; the empty string
// means no verified receipt exists yet
func (c *Client) QRCode(ctx context.Context) (string, error) {
	var result struct {
		QRCode *string `json:"qr_code"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/users/player/qr-code/", nil, &result, true); err != nil {
		return "", err
	}
	if result.QRCode == nil {
		return "", nil
	}
	return *result.QRCode, nil
}

// Roster fetches the full roster for the caller's team
func (c *Client) Roster(ctx context.Context) ([]model.RosterEntry, error) {
	var roster []model.RosterEntry
	if err := c.doJSON(ctx, http.MethodGet, "/users/team-players/", nil, &roster, true); err != nil {
		return nil, err
	}
	return roster, nil
}

// Users fetches every registered user; club admin only
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/all-users/", nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

// Receipts fetches all receipts, verified and unverified
func (c *Client) Receipts(ctx context.Context) ([]model.Receipt, error) {
	var receipts []model.Receipt
	if err := c.doJSON(ctx, http.MethodGet, "/users/receipts/all/", nil, &receipts, true); err != nil {
		return nil, err
	}
	return receipts, nil
}

// UnverifiedReceipts fetches receipts awaiting verification; club admin only
func (c *Client) UnverifiedReceipts(ctx context.Context) ([]model.Receipt, error) {
	var receipts []model.Receipt
	if err := c.doJSON(ctx, http.MethodGet, "/users/receipts/unverified/", nil, &receipts, true); err != nil {
		return nil, err
	}
	return receipts, nil
}

// UploadReceipt uploads a payment receipt file for a roster member, with an
// optional free-text note
func (c *Client) UploadReceipt(ctx context.Context, playerID model.UserID, file *model.Attachment, note string) (*model.Receipt, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, FieldErrors{"file": "Please select a file first"}
	}

	fields := map[string]string{
		"player": string(playerID),
		"note":   note,
	}
	files := []FormFile{{Field: "file", Attachment: file}}

	var receipt model.Receipt
	if err := c.doMultipart(ctx, http.MethodPost, "/users/receipts/upload/", fields, files, &receipt, true); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// VerifyReceipt marks a receipt as verified; club admin only
func (c *Client) VerifyReceipt(ctx context.Context, id model.ReceiptID) (string, error) {
	var result confirmation
	path := fmt.Sprintf("/users/receipts/verify/%s/", id)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &result, true); err != nil {
		return "", err
	}
	return result.Message, nil
}

// ScanQR submits a captured QR image for scan-based player verification
func (c *Client) ScanQR(ctx context.Context, image *model.Attachment) (*model.ScanResult, error) {
	if image == nil || len(image.Data) == 0 {
		return nil, FieldErrors{"qr_code": "QR code image required"}
	}

	files := []FormFile{{Field: "qr_code", Attachment: image}}

	var result model.ScanResult
	if err := c.doMultipart(ctx, http.MethodPost, "/users/scan-qr/", nil, files, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks backend availability
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil, false)
}
