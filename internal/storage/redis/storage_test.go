package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/masego-dev/clubctl/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Account tests

func (s *StorageSuite) TestSaveAndGetAccount() {
	account := &model.Account{
		ID:        "u_1",
		Email:     "alice@example.com",
		FirstName: "Alice",
		Surname:   "Smith",
		IDNumber:  "900101",
		CreatedAt: time.Now().UTC(),
	}

	err := s.storage.SaveAccount(s.ctx, account)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccount(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal(account.Email, retrieved.Email)
	s.Equal(account.FirstName, retrieved.FirstName)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetAccountByEmail() {
	account := &model.Account{ID: "u_1", Email: "Alice@Example.com", IDNumber: "900101"}
	_ = s.storage.SaveAccount(s.ctx, account)

	// Lookup is case-insensitive
	retrieved, err := s.storage.GetAccountByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u_1"), retrieved.ID)
}

func (s *StorageSuite) TestGetAccountByIDNumber() {
	account := &model.Account{ID: "u_1", Email: "alice@example.com", IDNumber: "900101"}
	_ = s.storage.SaveAccount(s.ctx, account)

	retrieved, err := s.storage.GetAccountByIDNumber(s.ctx, "900101")
	s.Require().NoError(err)
	s.Equal(model.UserID("u_1"), retrieved.ID)
}

func (s *StorageSuite) TestListAccountsPreservesInsertionOrder() {
	_ = s.storage.SaveAccount(s.ctx, &model.Account{ID: "u_2", Email: "b@x.com", IDNumber: "2"})
	_ = s.storage.SaveAccount(s.ctx, &model.Account{ID: "u_1", Email: "a@x.com", IDNumber: "1"})

	accounts, err := s.storage.ListAccounts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(accounts, 2)
	s.Equal(model.UserID("u_2"), accounts[0].ID)
	s.Equal(model.UserID("u_1"), accounts[1].ID)
}

func (s *StorageSuite) TestSaveAccountUpdateDoesNotDuplicateListing() {
	account := &model.Account{ID: "u_1", Email: "a@x.com", IDNumber: "1"}
	_ = s.storage.SaveAccount(s.ctx, account)

	account.Player = &model.PlayerProfile{TeamName: "Thunder Cats", Group: "A"}
	_ = s.storage.SaveAccount(s.ctx, account)

	accounts, err := s.storage.ListAccounts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(accounts, 1)
	s.Require().NotNil(accounts[0].Player)
	s.Equal("Thunder Cats", accounts[0].Player.TeamName)
}

func (s *StorageSuite) TestSaveAccountReindexesChangedFields() {
	_ = s.storage.SaveAccount(s.ctx, &model.Account{ID: "u_1", Email: "old@x.com", IDNumber: "1"})
	_ = s.storage.SaveAccount(s.ctx, &model.Account{ID: "u_1", Email: "new@x.com", IDNumber: "2"})

	_, err := s.storage.GetAccountByEmail(s.ctx, "old@x.com")
	s.ErrorIs(err, model.ErrUserNotFound)
	_, err = s.storage.GetAccountByIDNumber(s.ctx, "1")
	s.ErrorIs(err, model.ErrUserNotFound)

	retrieved, err := s.storage.GetAccountByEmail(s.ctx, "new@x.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u_1"), retrieved.ID)

	retrieved, err = s.storage.GetAccountByIDNumber(s.ctx, "2")
	s.Require().NoError(err)
	s.Equal(model.UserID("u_1"), retrieved.ID)
}

// Receipt tests

func (s *StorageSuite) TestSaveAndGetReceipt() {
	receipt := &model.StoredReceipt{
		ID:           "r_1",
		PlayerID:     "u_1",
		UploadedByID: "u_2",
		FileBlobID:   "b_1",
		Note:         "January fees",
		UploadedAt:   time.Now().UTC(),
	}

	err := s.storage.SaveReceipt(s.ctx, receipt)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetReceipt(s.ctx, "r_1")
	s.Require().NoError(err)
	s.Equal(receipt.Note, retrieved.Note)
	s.False(retrieved.Verified)
}

func (s *StorageSuite) TestGetReceiptNotFound() {
	_, err := s.storage.GetReceipt(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrReceiptNotFound)
}

func (s *StorageSuite) TestListReceiptsPreservesUploadOrder() {
	_ = s.storage.SaveReceipt(s.ctx, &model.StoredReceipt{ID: "r_2", PlayerID: "u_1"})
	_ = s.storage.SaveReceipt(s.ctx, &model.StoredReceipt{ID: "r_1", PlayerID: "u_1"})

	receipts, err := s.storage.ListReceipts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(receipts, 2)
	s.Equal(model.ReceiptID("r_2"), receipts[0].ID)
	s.Equal(model.ReceiptID("r_1"), receipts[1].ID)
}

// Blob tests

func (s *StorageSuite) TestSaveAndGetBlob() {
	blob := &model.Blob{
		ID:          "b_1",
		ContentType: "image/png",
		Filename:    "photo.png",
		Data:        []byte{0x89, 0x50, 0x4e, 0x47},
	}

	err := s.storage.SaveBlob(s.ctx, blob)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetBlob(s.ctx, "b_1")
	s.Require().NoError(err)
	s.Equal(blob.ContentType, retrieved.ContentType)
	s.Equal(blob.Data, retrieved.Data)
}

func (s *StorageSuite) TestGetBlobNotFound() {
	_, err := s.storage.GetBlob(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrBlobNotFound)
}
