package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/masego-dev/clubctl/internal/dependencies/mocks"
	"github.com/masego-dev/clubctl/internal/model"
	"github.com/masego-dev/clubctl/internal/storage/memory"
	"github.com/masego-dev/clubctl/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	svc     *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.svc = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) registration(email, idNum string) Registration {
	return Registration{
		Email:       email,
		Password:    "longenough",
		FirstName:   "Alice",
		Surname:     "Smith",
		IDNumber:    idNum,
		Contact:     "71234567",
		DateOfBirth: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		Nationality: "Botswana",
	}
}

func (s *ServiceSuite) pngPhoto() *model.Attachment {
	return model.NewAttachment("photo.png", []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a})
}

func (s *ServiceSuite) TestRegisterMember() {
	acct, err := s.svc.RegisterMember(s.ctx, s.registration("alice@example.com", "900101"))
	s.Require().NoError(err)
	s.True(acct.IsMember)
	s.Equal(model.RoleMember, acct.ResolveRole())
	s.NotEqual("longenough", acct.PasswordHash, "password must be hashed")
}

func (s *ServiceSuite) TestDuplicateEmailRejected() {
	_, err := s.svc.RegisterMember(s.ctx, s.registration("alice@example.com", "900101"))
	s.Require().NoError(err)

	_, err = s.svc.RegisterMember(s.ctx, s.registration("Alice@Example.com", "900102"))
	s.ErrorIs(err, model.ErrEmailExists)
}

func (s *ServiceSuite) TestDuplicateIDNumberRejected() {
	_, err := s.svc.RegisterMember(s.ctx, s.registration("alice@example.com", "900101"))
	s.Require().NoError(err)

	_, err = s.svc.RegisterMember(s.ctx, s.registration("bob@example.com", "900101"))
	s.ErrorIs(err, model.ErrIDNumberExists)
}

func (s *ServiceSuite) TestDuplicateCertificationRejected() {
	_, err := s.svc.RegisterUmpire(s.ctx, s.registration("alice@example.com", "900101"), "CERT-1")
	s.Require().NoError(err)

	_, err = s.svc.RegisterUmpire(s.ctx, s.registration("bob@example.com", "900102"), "CERT-1")
	s.ErrorIs(err, model.ErrCertificationExists)
}

func (s *ServiceSuite) TestRegisterPlayerStoresProfileAndPhoto() {
	details := PlayerDetails{
		TeamName: "Thunder Cats",
		Group:    "A",
		Photo:    s.pngPhoto(),
	}
	acct, err := s.svc.RegisterPlayer(s.ctx, s.registration("alice@example.com", "900101"), details)
	s.Require().NoError(err)
	s.Require().NotNil(acct.Player)
	s.Equal("Thunder Cats", acct.Player.TeamName)
	s.Equal(model.RolePlayer, acct.ResolveRole())

	blob, err := s.storage.GetBlob(s.ctx, acct.Player.PhotoBlobID)
	s.Require().NoError(err)
	s.Equal("image/png", blob.ContentType)
}

func (s *ServiceSuite) TestRegisterPlayerUnknownTeam() {
	details := PlayerDetails{TeamName: "No Such Team", Group: "A", Photo: s.pngPhoto()}
	_, err := s.svc.RegisterPlayer(s.ctx, s.registration("alice@example.com", "900101"), details)
	s.ErrorIs(err, model.ErrInvalidTeam)
}

func (s *ServiceSuite) TestLogin() {
	_, err := s.svc.RegisterClubAdmin(s.ctx, s.registration("alice@example.com", "900101"))
	s.Require().NoError(err)

	acct, role, err := s.svc.Login(s.ctx, "alice@example.com", "longenough")
	s.Require().NoError(err)
	s.Equal(model.RoleClubAdmin, role)
	s.Equal("alice@example.com", acct.Email)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, err := s.svc.RegisterMember(s.ctx, s.registration("alice@example.com", "900101"))
	s.Require().NoError(err)

	_, _, err = s.svc.Login(s.ctx, "alice@example.com", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownEmail() {
	_, _, err := s.svc.Login(s.ctx, "nobody@example.com", "whatever")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestBecomePlayer() {
	umpire, err := s.svc.RegisterUmpire(s.ctx, s.registration("alice@example.com", "900101"), "CERT-1")
	s.Require().NoError(err)

	details := PlayerDetails{TeamName: "Thunder Cats", Group: "A", Photo: s.pngPhoto()}
	updated, err := s.svc.BecomePlayer(s.ctx, umpire.ID, details)
	s.Require().NoError(err)
	s.Require().NotNil(updated.Player)

	// Umpire status outranks the new player profile for role resolution
	s.Equal(model.RoleUmpire, updated.ResolveRole())
}

func (s *ServiceSuite) TestBecomePlayerTwiceRejected() {
	umpire, err := s.svc.RegisterUmpire(s.ctx, s.registration("alice@example.com", "900101"), "CERT-1")
	s.Require().NoError(err)

	details := PlayerDetails{TeamName: "Thunder Cats", Group: "A", Photo: s.pngPhoto()}
	_, err = s.svc.BecomePlayer(s.ctx, umpire.ID, details)
	s.Require().NoError(err)

	_, err = s.svc.BecomePlayer(s.ctx, umpire.ID, details)
	s.ErrorIs(err, model.ErrAlreadyPlayer)
}

func (s *ServiceSuite) TestListOthersExcludesRequester() {
	admin, err := s.svc.RegisterClubAdmin(s.ctx, s.registration("admin@example.com", "900100"))
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.svc.RegisterMember(s.ctx, s.registration("bob@example.com", "900101"))
	s.Require().NoError(err)

	others, err := s.svc.ListOthers(s.ctx, admin.ID)
	s.Require().NoError(err)
	s.Require().Len(others, 1)
	s.Equal("bob@example.com", others[0].Email)
}

func (s *ServiceSuite) TestRosterScopedToTeam() {
	details := func(team string, isAdmin bool) PlayerDetails {
		return PlayerDetails{TeamName: team, Group: "A", IsTeamAdmin: isAdmin, Photo: s.pngPhoto()}
	}

	admin, err := s.svc.RegisterPlayer(s.ctx, s.registration("admin@example.com", "900100"), details("Thunder Cats", true))
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.svc.RegisterPlayer(s.ctx, s.registration("mate@example.com", "900101"), details("Thunder Cats", false))
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.svc.RegisterPlayer(s.ctx, s.registration("rival@example.com", "900102"), details("Pioneers", false))
	s.Require().NoError(err)

	roster, err := s.svc.Roster(s.ctx, admin.ID)
	s.Require().NoError(err)
	s.Require().Len(roster, 2)
	for _, a := range roster {
		s.Equal("Thunder Cats", a.Player.TeamName)
	}
}

func (s *ServiceSuite) TestRosterRequiresTeamAdmin() {
	player, err := s.svc.RegisterPlayer(s.ctx, s.registration("alice@example.com", "900101"),
		PlayerDetails{TeamName: "Thunder Cats", Group: "A", Photo: s.pngPhoto()})
	s.Require().NoError(err)

	_, err = s.svc.Roster(s.ctx, player.ID)
	s.ErrorIs(err, model.ErrNotTeamAdmin)

	member, err := s.svc.RegisterMember(s.ctx, s.registration("bob@example.com", "900102"))
	s.Require().NoError(err)

	_, err = s.svc.Roster(s.ctx, member.ID)
	s.ErrorIs(err, model.ErrNoPlayerProfile)
}
