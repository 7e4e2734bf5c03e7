// Package factory wires the backend's services together.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/masego-dev/clubctl/internal/dependencies/clock"
	"github.com/masego-dev/clubctl/internal/dependencies/random"
	"github.com/masego-dev/clubctl/internal/services/account"
	"github.com/masego-dev/clubctl/internal/services/receipt"
	"github.com/masego-dev/clubctl/internal/services/token"
	"github.com/masego-dev/clubctl/internal/storage"
	"github.com/masego-dev/clubctl/internal/storage/memory"
	redisstorage "github.com/masego-dev/clubctl/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

const secretAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AccountService *account.Service
	ReceiptService *receipt.Service
	TokenService   *token.Service
}

// Config holds configuration for the application factory
type Config struct {
	// TokenSecret signs access and refresh tokens (optional)
	// If empty, a random per-process secret is generated; tokens then do not
	// survive a restart
	TokenSecret string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	secret := cfg.TokenSecret
	if secret == "" {
		secret = rnd.String(48, secretAlphabet)
	}

	return newWithDependencies(store, clk, rnd, secret, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, tokenSecret string, logger *slog.Logger) *App {
	// Create services
	tokenService := token.New(token.DefaultConfig([]byte(tokenSecret)), clk)
	accountService := account.New(store, clk, logger)
	receiptService := receipt.New(store, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		AccountService: accountService,
		ReceiptService: receiptService,
		TokenService:   tokenService,
	}
}
