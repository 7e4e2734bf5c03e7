// Package apierr maps service errors onto the wire error shapes the client
// understands: {"error": ...}, {"detail": ...}, and per-field maps of the
// form {"field": ["message"]}.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/masego-dev/clubctl/internal/model"
	"github.com/masego-dev/clubctl/internal/services/account"
	"github.com/masego-dev/clubctl/internal/services/token"
)

// httpError combines an HTTP status code with a serializable response body
type httpError struct {
	status int
	body   any
}

// Error implements error interface
func (e *httpError) Error() string {
	data, _ := json.Marshal(e.body)
	return string(data)
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.body)
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{http.StatusBadRequest, fieldBody("email", "user with this email already exists")}
	case errors.Is(err, model.ErrIDNumberExists):
		return &httpError{http.StatusBadRequest, fieldBody("id_num", "user with this id number already exists")}
	case errors.Is(err, model.ErrCertificationExists):
		return &httpError{http.StatusBadRequest, fieldBody("umpire_certification_id", "umpire with this certification id already exists")}
	case errors.Is(err, model.ErrAlreadyPlayer):
		return &httpError{http.StatusBadRequest, errorBody("You are already registered as a player")}
	case errors.Is(err, model.ErrInvalidTeam):
		return &httpError{http.StatusBadRequest, fieldBody("team_name", "Select a valid choice")}
	case errors.Is(err, model.ErrInvalidGroup):
		return &httpError{http.StatusBadRequest, fieldBody("group", "Select a valid choice")}
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrReceiptNotFound),
		errors.Is(err, model.ErrBlobNotFound):
		return &httpError{http.StatusNotFound, detailBody("Not found.")}
	case errors.Is(err, model.ErrNoPlayerProfile):
		return &httpError{http.StatusBadRequest, errorBody("Player profile not found")}
	case errors.Is(err, model.ErrNotTeamAdmin), errors.Is(err, model.ErrNotClubAdmin):
		return &httpError{http.StatusForbidden, detailBody("You do not have permission to perform this action.")}
	case errors.Is(err, model.ErrUnreadableQR):
		return &httpError{http.StatusBadRequest, errorBody("Could not read QR code")}

	// Map auth errors
	case errors.Is(err, account.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, detailBody("No active account found with the given credentials")}
	case errors.Is(err, token.ErrInvalidToken), errors.Is(err, token.ErrWrongUse):
		return &httpError{http.StatusUnauthorized, detailBody("Token is invalid or expired")}

	default:
		return &httpError{http.StatusInternalServerError, errorBody("Internal server error")}
	}
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

func detailBody(message string) map[string]string {
	return map[string]string{"detail": message}
}

func fieldBody(field, message string) map[string][]string {
	return map[string][]string{field: {message}}
}

// NewValidationError reports per-field form errors
func NewValidationError(fields map[string]string) error {
	body := make(map[string][]string, len(fields))
	for field, message := range fields {
		body[field] = []string{message}
	}
	return &httpError{http.StatusBadRequest, body}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, errorBody(message)}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, detailBody("Authentication credentials were not provided.")}
}

// NewForbiddenError creates a permission error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, detailBody("You do not have permission to perform this action.")}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, errorBody("Internal server error")}
}
