package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"

	"github.com/masego-dev/clubctl/internal/api"
	"github.com/masego-dev/clubctl/internal/factory"
	redisstorage "github.com/masego-dev/clubctl/internal/storage/redis"
)

type config struct {
	Server      api.ServerConfig
	TokenSecret string `env:"CLUBD_TOKEN_SECRET"`
	StorageType string `env:"STORAGE_TYPE"`
	RedisURL    string `env:"REDIS_URL"`
}

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logger.Error("failed to parse environment", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config from environment
	factoryCfg := factory.Config{
		TokenSecret: cfg.TokenSecret,
		Logger:      logger,
		StorageType: cfg.StorageType,
	}

	// Configure Redis if storage type is redis
	if factoryCfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AccountService: app.AccountService,
		ReceiptService: app.ReceiptService,
		TokenService:   app.TokenService,
		Storage:        app.Storage,
	})

	// Create server
	server := api.NewServer(router, cfg.Server, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
