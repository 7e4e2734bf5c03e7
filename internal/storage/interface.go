package storage

import (
	"context"

	"github.com/masego-dev/clubctl/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Account operations. Save maintains the email and id-number lookup
	// indexes; uniqueness itself is enforced by the account service.
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.UserID) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByIDNumber(ctx context.Context, idNumber string) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]*model.Account, error)

	// Receipt operations
	SaveReceipt(ctx context.Context, receipt *model.StoredReceipt) error
	GetReceipt(ctx context.Context, id model.ReceiptID) (*model.StoredReceipt, error)
	ListReceipts(ctx context.Context) ([]*model.StoredReceipt, error)

	// Blob operations (uploaded files and generated QR payloads)
	SaveBlob(ctx context.Context, blob *model.Blob) error
	GetBlob(ctx context.Context, id string) (*model.Blob, error)
}
