package handler

import (
	"encoding/json"
	"net/http"

	"github.com/masego-dev/clubctl/internal/api/request"
	"github.com/masego-dev/clubctl/internal/api/response"
	"github.com/masego-dev/clubctl/internal/services/account"
	"github.com/masego-dev/clubctl/internal/services/token"
)

// AuthHandler handles login and token refresh
type AuthHandler struct {
	accounts *account.Service
	tokens   *token.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts *account.Service, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		tokens:   tokens,
	}
}

// Login handles POST /users/login/
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	missing := map[string]string{}
	if req.Email == "" {
		missing["email"] = "This field is required."
	}
	if req.Password == "" {
		missing["password"] = "This field is required."
	}
	if len(missing) > 0 {
		WriteError(w, NewValidationError(missing))
		return
	}

	acct, role, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	pair, err := h.tokens.MintPair(acct.ID, role)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LoginFromAccount(acct, role, pair.Access, pair.Refresh))
}

// Refresh handles POST /api/token/refresh/
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Refresh == "" {
		WriteError(w, NewValidationError(map[string]string{"refresh": "This field is required."}))
		return
	}

	access, err := h.tokens.Refresh(req.Refresh)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Refresh{Access: access})
}
