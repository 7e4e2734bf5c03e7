package handler

import (
	"net/http"

	"github.com/masego-dev/clubctl/internal/api/middleware"
	"github.com/masego-dev/clubctl/internal/api/response"
	"github.com/masego-dev/clubctl/internal/services/account"
)

// UsersHandler handles the user listing endpoints
type UsersHandler struct {
	accounts *account.Service
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(accounts *account.Service) *UsersHandler {
	return &UsersHandler{
		accounts: accounts,
	}
}

// AllUsers handles GET /users/all-users/
// Club admins see every registered user except themselves.
func (h *UsersHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	acct := middleware.MustGetAccount(r.Context())
	if !acct.IsClubAdmin {
		WriteError(w, NewForbiddenError())
		return
	}

	accounts, err := h.accounts.ListOthers(r.Context(), acct.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.UsersFromAccounts(accounts))
}

// TeamPlayers handles GET /users/team-players/
// Team admins see the roster of their own team.
func (h *UsersHandler) TeamPlayers(w http.ResponseWriter, r *http.Request) {
	acct := middleware.MustGetAccount(r.Context())

	roster, err := h.accounts.Roster(r.Context(), acct.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RosterFromAccounts(roster))
}
