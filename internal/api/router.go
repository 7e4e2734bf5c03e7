package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/masego-dev/clubctl/internal/api/handler"
	apimiddleware "github.com/masego-dev/clubctl/internal/api/middleware"
	"github.com/masego-dev/clubctl/internal/middleware"
	"github.com/masego-dev/clubctl/internal/services/account"
	"github.com/masego-dev/clubctl/internal/services/receipt"
	"github.com/masego-dev/clubctl/internal/services/token"
	"github.com/masego-dev/clubctl/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AccountService *account.Service
	ReceiptService *receipt.Service
	TokenService   *token.Service
	Storage        storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(apimiddleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AccountService, cfg.TokenService)
	registerHandler := handler.NewRegisterHandler(cfg.AccountService)
	usersHandler := handler.NewUsersHandler(cfg.AccountService)
	receiptsHandler := handler.NewReceiptsHandler(cfg.AccountService, cfg.ReceiptService)
	mediaHandler := handler.NewMediaHandler(cfg.Storage)

	authMiddleware := apimiddleware.Auth(cfg.TokenService, cfg.AccountService)

	// Open routes: login, refresh, registration
	r.HandleFunc("/users/login/", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/token/refresh/", authHandler.Refresh).Methods(http.MethodPost)
	r.HandleFunc("/users/register/member/", registerHandler.Member).Methods(http.MethodPost)
	r.HandleFunc("/users/register/player/", registerHandler.Player).Methods(http.MethodPost)
	r.HandleFunc("/users/register/team-admin/", registerHandler.TeamAdmin).Methods(http.MethodPost)
	r.HandleFunc("/users/register/club-admin/", registerHandler.ClubAdmin).Methods(http.MethodPost)
	r.HandleFunc("/users/register/umpire/", registerHandler.Umpire).Methods(http.MethodPost)

	// Protected routes
	protected := r.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/users/become-player/", registerHandler.BecomePlayer).Methods(http.MethodPost)
	protected.HandleFunc("/users/all-users/", usersHandler.AllUsers).Methods(http.MethodGet)
	protected.HandleFunc("/users/team-players/", usersHandler.TeamPlayers).Methods(http.MethodGet)
	protected.HandleFunc("/users/receipts/upload/", receiptsHandler.Upload).Methods(http.MethodPost)
	protected.HandleFunc("/users/receipts/verify/{id}/", receiptsHandler.Verify).Methods(http.MethodPost)
	protected.HandleFunc("/users/receipts/all/", receiptsHandler.All).Methods(http.MethodGet)
	protected.HandleFunc("/users/receipts/unverified/", receiptsHandler.Unverified).Methods(http.MethodGet)
	protected.HandleFunc("/users/player/qr-code/", receiptsHandler.QRCode).Methods(http.MethodGet)
	protected.HandleFunc("/users/scan-qr/", receiptsHandler.Scan).Methods(http.MethodPost)

	// Media served without auth, matching how the dashboards embed file URLs
	r.HandleFunc("/media/{id}", mediaHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
