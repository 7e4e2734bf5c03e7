package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/masego-dev/clubctl/internal/model"
	"github.com/masego-dev/clubctl/internal/services/account"
	"github.com/masego-dev/clubctl/internal/services/token"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) registration(email, idNum string) account.Registration {
	return account.Registration{
		Email:       email,
		Password:    "secret123",
		FirstName:   "Alice",
		Surname:     "Smith",
		IDNumber:    idNum,
		Contact:     "71234567",
		DateOfBirth: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func (s *IntegrationSuite) pngPhoto() *model.Attachment {
	return model.NewAttachment("me.png", []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a})
}

// Test: registration through login through token verification
func (s *IntegrationSuite) TestLoginIssuesUsableTokens() {
	_, err := s.app.AccountService.RegisterClubAdmin(s.ctx, s.registration("admin@example.com", "900100"))
	s.Require().NoError(err)

	acct, role, err := s.app.AccountService.Login(s.ctx, "admin@example.com", "secret123")
	s.Require().NoError(err)
	s.Equal(model.RoleClubAdmin, role)

	pair, err := s.app.TokenService.MintPair(acct.ID, role)
	s.Require().NoError(err)

	claims, err := s.app.TokenService.VerifyAccess(pair.Access)
	s.Require().NoError(err)
	s.Equal(string(acct.ID), claims.Subject)
	s.Equal(role, claims.Role)

	// The access token lapses with time while the refresh token still mints
	s.app.MockClock.Advance(20 * time.Minute)
	_, err = s.app.TokenService.VerifyAccess(pair.Access)
	s.ErrorIs(err, token.ErrInvalidToken)

	access2, err := s.app.TokenService.Refresh(pair.Refresh)
	s.Require().NoError(err)
	_, err = s.app.TokenService.VerifyAccess(access2)
	s.Require().NoError(err)
}

// Test: the receipt lifecycle from upload to a scannable QR pass
func (s *IntegrationSuite) TestReceiptLifecycle() {
	captain, err := s.app.AccountService.RegisterPlayer(s.ctx, s.registration("captain@example.com", "900101"),
		account.PlayerDetails{TeamName: "Thunder Cats", Group: "A", IsTeamAdmin: true, Photo: s.pngPhoto()})
	s.Require().NoError(err)

	s.app.MockClock.Advance(time.Minute)
	player, err := s.app.AccountService.RegisterPlayer(s.ctx, s.registration("player@example.com", "900102"),
		account.PlayerDetails{TeamName: "Thunder Cats", Group: "A", Photo: s.pngPhoto()})
	s.Require().NoError(err)

	// The captain sees both accounts on the roster
	roster, err := s.app.AccountService.Roster(s.ctx, captain.ID)
	s.Require().NoError(err)
	s.Len(roster, 2)

	receipt, err := s.app.ReceiptService.Upload(s.ctx, captain.ID, player.ID,
		model.NewAttachment("receipt.png", []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}), "march fees")
	s.Require().NoError(err)
	s.Equal(s.app.MockClock.Now(), receipt.UploadedAt)

	pending, err := s.app.ReceiptService.Unverified(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)

	verified, err := s.app.ReceiptService.Verify(s.ctx, receipt.ID)
	s.Require().NoError(err)
	s.Require().NotEmpty(verified.QRBlobID)

	blobID, err := s.app.ReceiptService.QRBlobID(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(verified.QRBlobID, blobID)

	pass, err := s.app.Storage.GetBlob(s.ctx, blobID)
	s.Require().NoError(err)

	scanned, paid, err := s.app.ReceiptService.Scan(s.ctx, model.NewAttachment("pass.json", pass.Data))
	s.Require().NoError(err)
	s.Equal(player.ID, scanned.ID)
	s.True(paid)
}

// Test: the factory falls back to a generated signing secret
func (s *IntegrationSuite) TestGeneratedSecretStillSigns() {
	app, err := New(Config{})
	s.Require().NoError(err)

	pair, err := app.TokenService.MintPair("u_1", model.RoleMember)
	s.Require().NoError(err)

	claims, err := app.TokenService.VerifyAccess(pair.Access)
	s.Require().NoError(err)
	s.Equal("u_1", claims.Subject)
}
