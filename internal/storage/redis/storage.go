package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/masego-dev/clubctl/internal/model"
	"github.com/masego-dev/clubctl/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	prev, err := s.GetAccount(ctx, account.ID)
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	// Pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, accountKey(account.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(account.Email), string(account.ID), 0)
	pipe.Set(ctx, idNumberIndexKey(account.IDNumber), string(account.ID), 0)
	if prev == nil {
		pipe.RPush(ctx, accountsIndexKey(), string(account.ID))
	} else {
		// Drop stale index entries if a re-save changed an indexed field
		if !strings.EqualFold(prev.Email, account.Email) {
			pipe.Del(ctx, emailIndexKey(prev.Email))
		}
		if prev.IDNumber != account.IDNumber {
			pipe.Del(ctx, idNumberIndexKey(prev.IDNumber))
		}
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAccount(ctx context.Context, id model.UserID) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	id, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetAccount(ctx, model.UserID(id))
}

func (s *Storage) GetAccountByIDNumber(ctx context.Context, idNumber string) (*model.Account, error) {
	id, err := s.client.Get(ctx, idNumberIndexKey(idNumber)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetAccount(ctx, model.UserID(id))
}

func (s *Storage) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	ids, err := s.client.LRange(ctx, accountsIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	accounts := make([]*model.Account, 0, len(ids))
	for _, id := range ids {
		account, err := s.GetAccount(ctx, model.UserID(id))
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// Receipt operations

func (s *Storage) SaveReceipt(ctx context.Context, receipt *model.StoredReceipt) error {
	data, err := json.Marshal(receipt)
	if err != nil {
		return err
	}

	isNew, err := s.client.Exists(ctx, receiptKey(receipt.ID)).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, receiptKey(receipt.ID), data, 0)
	if isNew == 0 {
		pipe.RPush(ctx, receiptsIndexKey(), string(receipt.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetReceipt(ctx context.Context, id model.ReceiptID) (*model.StoredReceipt, error) {
	data, err := s.client.Get(ctx, receiptKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrReceiptNotFound
		}
		return nil, err
	}

	var receipt model.StoredReceipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (s *Storage) ListReceipts(ctx context.Context) ([]*model.StoredReceipt, error) {
	ids, err := s.client.LRange(ctx, receiptsIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	receipts := make([]*model.StoredReceipt, 0, len(ids))
	for _, id := range ids {
		receipt, err := s.GetReceipt(ctx, model.ReceiptID(id))
		if err != nil {
			if errors.Is(err, model.ErrReceiptNotFound) {
				continue
			}
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

// Blob operations

func (s *Storage) SaveBlob(ctx context.Context, blob *model.Blob) error {
	data, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, blobKey(blob.ID), data, 0).Err()
}

func (s *Storage) GetBlob(ctx context.Context, id string) (*model.Blob, error) {
	data, err := s.client.Get(ctx, blobKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBlobNotFound
		}
		return nil, err
	}

	var blob model.Blob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, err
	}
	return &blob, nil
}
