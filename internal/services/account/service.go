// Package account implements registration, login, and user listings for the
// sandbox backend.
package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/masego-dev/clubctl/internal/dependencies/clock"
	"github.com/masego-dev/clubctl/internal/model"
	"github.com/masego-dev/clubctl/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles account management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new account service
func New(storage storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		logger:  logger,
	}
}

// Registration carries the fields shared by every role's registration form
type Registration struct {
	Email              string
	Password           string
	FirstName          string
	Surname            string
	IDNumber           string
	Contact            string
	DateOfBirth        time.Time
	PostalAddress      string
	ResidentialAddress string
	Nationality        string
}

// PlayerDetails carries the player-specific registration extension
type PlayerDetails struct {
	TeamName    string
	Group       string
	IsTeamAdmin bool
	Photo       *model.Attachment
}

// savePhoto stores the profile photo and returns its blob id, "" for none
func (s *Service) savePhoto(ctx context.Context, photo *model.Attachment) (string, error) {
	if photo == nil {
		return "", nil
	}
	blob := &model.Blob{
		ID:          "b_" + uuid.NewString(),
		ContentType: photo.ContentType,
		Filename:    photo.Filename,
		Data:        photo.Data,
	}
	if err := s.storage.SaveBlob(ctx, blob); err != nil {
		return "", err
	}
	return blob.ID, nil
}

// RegisterMember creates a member account
func (s *Service) RegisterMember(ctx context.Context, reg Registration) (*model.Account, error) {
	return s.create(ctx, reg, func(a *model.Account) error {
		a.IsMember = true
		return nil
	})
}

// RegisterClubAdmin creates a club admin account
func (s *Service) RegisterClubAdmin(ctx context.Context, reg Registration) (*model.Account, error) {
	return s.create(ctx, reg, func(a *model.Account) error {
		a.IsClubAdmin = true
		return nil
	})
}

// RegisterUmpire creates an umpire account. Certification ids are unique
// across umpires.
func (s *Service) RegisterUmpire(ctx context.Context, reg Registration, certificationID string) (*model.Account, error) {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.IsUmpire && a.CertificationID == certificationID {
			return nil, model.ErrCertificationExists
		}
	}

	return s.create(ctx, reg, func(a *model.Account) error {
		a.IsUmpire = true
		a.CertificationID = certificationID
		return nil
	})
}

// RegisterPlayer creates a player (or team admin) account with its profile
func (s *Service) RegisterPlayer(ctx context.Context, reg Registration, details PlayerDetails) (*model.Account, error) {
	if details.TeamName != "" && !model.ValidTeam(details.TeamName) {
		return nil, model.ErrInvalidTeam
	}
	if details.Group != "" && !model.ValidGroup(details.Group) {
		return nil, model.ErrInvalidGroup
	}

	photoID, err := s.savePhoto(ctx, details.Photo)
	if err != nil {
		return nil, err
	}

	return s.create(ctx, reg, func(a *model.Account) error {
		a.Player = &model.PlayerProfile{
			TeamName:    details.TeamName,
			Group:       details.Group,
			IsTeamAdmin: details.IsTeamAdmin,
			PhotoBlobID: photoID,
		}
		return nil
	})
}

// create builds an account from the shared fields, enforcing email and id
// number uniqueness, then applies the role-specific mutation
func (s *Service) create(ctx context.Context, reg Registration, mutate func(*model.Account) error) (*model.Account, error) {
	if _, err := s.storage.GetAccountByEmail(ctx, reg.Email); err == nil {
		return nil, model.ErrEmailExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.storage.GetAccountByIDNumber(ctx, reg.IDNumber); err == nil {
		return nil, model.ErrIDNumberExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		ID:                 model.UserID("u_" + uuid.NewString()),
		Email:              reg.Email,
		PasswordHash:       string(hash),
		FirstName:          reg.FirstName,
		Surname:            reg.Surname,
		IDNumber:           reg.IDNumber,
		Contact:            reg.Contact,
		DateOfBirth:        reg.DateOfBirth,
		PostalAddress:      reg.PostalAddress,
		ResidentialAddress: reg.ResidentialAddress,
		Nationality:        reg.Nationality,
		CreatedAt:          s.clock.Now(),
	}

	if err := mutate(account); err != nil {
		return nil, err
	}

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		slog.String("user_id", string(account.ID)),
		slog.String("role", string(account.ResolveRole())),
	)
	return account, nil
}

// Login authenticates by email and password and resolves the account's role
func (s *Service) Login(ctx context.Context, email, password string) (*model.Account, model.Role, error) {
	account, err := s.storage.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	return account, account.ResolveRole(), nil
}

// Get returns an account by id
func (s *Service) Get(ctx context.Context, id model.UserID) (*model.Account, error) {
	return s.storage.GetAccount(ctx, id)
}

// BecomePlayer attaches a player profile to an existing account. Rejected
// when the account already has one.
func (s *Service) BecomePlayer(ctx context.Context, id model.UserID, details PlayerDetails) (*model.Account, error) {
	account, err := s.storage.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.Player != nil {
		return nil, model.ErrAlreadyPlayer
	}
	if details.TeamName != "" && !model.ValidTeam(details.TeamName) {
		return nil, model.ErrInvalidTeam
	}
	if details.Group != "" && !model.ValidGroup(details.Group) {
		return nil, model.ErrInvalidGroup
	}

	photoID, err := s.savePhoto(ctx, details.Photo)
	if err != nil {
		return nil, err
	}

	account.Player = &model.PlayerProfile{
		TeamName:    details.TeamName,
		Group:       details.Group,
		IsTeamAdmin: details.IsTeamAdmin,
		PhotoBlobID: photoID,
	}

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListOthers returns every account except the requester's own; club admin
// listings exclude the admin doing the asking
func (s *Service) ListOthers(ctx context.Context, exclude model.UserID) ([]*model.Account, error) {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	others := make([]*model.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.ID != exclude {
			others = append(others, a)
		}
	}
	return others, nil
}

// Roster returns the player accounts on the requester's team. The requester
// must hold a team admin profile.
func (s *Service) Roster(ctx context.Context, requester model.UserID) ([]*model.Account, error) {
	account, err := s.storage.GetAccount(ctx, requester)
	if err != nil {
		return nil, err
	}
	if account.Player == nil {
		return nil, model.ErrNoPlayerProfile
	}
	if !account.Player.IsTeamAdmin {
		return nil, model.ErrNotTeamAdmin
	}

	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	var roster []*model.Account
	for _, a := range accounts {
		if a.Player != nil && a.Player.TeamName == account.Player.TeamName {
			roster = append(roster, a)
		}
	}
	return roster, nil
}
