package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/masego-dev/clubctl/internal/model"
	"github.com/masego-dev/clubctl/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts      map[model.UserID]*model.Account
	emailIndex    map[string]model.UserID
	idNumberIndex map[string]model.UserID
	receipts      map[model.ReceiptID]*model.StoredReceipt
	receiptOrder  []model.ReceiptID
	blobs         map[string]*model.Blob
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:      make(map[model.UserID]*model.Account),
		emailIndex:    make(map[string]model.UserID),
		idNumberIndex: make(map[string]model.UserID),
		receipts:      make(map[model.ReceiptID]*model.StoredReceipt),
		blobs:         make(map[string]*model.Blob),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Drop stale index entries if a re-save changed an indexed field
	if prev, ok := s.accounts[account.ID]; ok {
		delete(s.emailIndex, strings.ToLower(prev.Email))
		delete(s.idNumberIndex, prev.IDNumber)
	}
	s.accounts[account.ID] = account
	s.emailIndex[strings.ToLower(account.Email)] = account.ID
	s.idNumberIndex[account.IDNumber] = account.ID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.UserID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[strings.ToLower(email)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByIDNumber(ctx context.Context, idNumber string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.idNumberIndex[idNumber]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return account, nil
}

func (s *Storage) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]*model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}
	// Deterministic listing order
	sort.Slice(accounts, func(i, j int) bool {
		if !accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
		}
		return accounts[i].ID < accounts[j].ID
	})
	return accounts, nil
}

// Receipt operations

func (s *Storage) SaveReceipt(ctx context.Context, receipt *model.StoredReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.receipts[receipt.ID]; !exists {
		s.receiptOrder = append(s.receiptOrder, receipt.ID)
	}
	s.receipts[receipt.ID] = receipt
	return nil
}

func (s *Storage) GetReceipt(ctx context.Context, id model.ReceiptID) (*model.StoredReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	receipt, ok := s.receipts[id]
	if !ok {
		return nil, model.ErrReceiptNotFound
	}
	return receipt, nil
}

func (s *Storage) ListReceipts(ctx context.Context) ([]*model.StoredReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	receipts := make([]*model.StoredReceipt, 0, len(s.receiptOrder))
	for _, id := range s.receiptOrder {
		if r, ok := s.receipts[id]; ok {
			receipts = append(receipts, r)
		}
	}
	return receipts, nil
}

// Blob operations

func (s *Storage) SaveBlob(ctx context.Context, blob *model.Blob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[blob.ID] = blob
	return nil
}

func (s *Storage) GetBlob(ctx context.Context, id string) (*model.Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[id]
	if !ok {
		return nil, model.ErrBlobNotFound
	}
	return blob, nil
}
