package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/masego-dev/clubctl/internal/api/apierr"
	"github.com/masego-dev/clubctl/internal/model"
	"github.com/masego-dev/clubctl/internal/services/account"
	"github.com/masego-dev/clubctl/internal/services/token"
)

type contextKey string

const accountContextKey contextKey = "account"

// Auth creates authentication middleware. It verifies the bearer access
// token and loads the account it names into the request context.
func Auth(tokens *token.Service, accounts *account.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer := extractToken(r)
			if bearer == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			claims, err := tokens.VerifyAccess(bearer)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			acct, err := accounts.Get(r.Context(), model.UserID(claims.Subject))
			if err != nil {
				// The token outlived the account it names
				apierr.WriteError(w, token.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey, acct)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetAccount returns the authenticated account from the request context
func GetAccount(ctx context.Context) *model.Account {
	acct, _ := ctx.Value(accountContextKey).(*model.Account)
	return acct
}

// MustGetAccount returns the authenticated account or panics
func MustGetAccount(ctx context.Context) *model.Account {
	acct := GetAccount(ctx)
	if acct == nil {
		panic("no account in context - auth middleware not applied?")
	}
	return acct
}
