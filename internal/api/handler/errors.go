package handler

import (
	"net/http"

	"github.com/masego-dev/clubctl/internal/api/apierr"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewValidationError reports per-field form errors
func NewValidationError(fields map[string]string) error {
	return apierr.NewValidationError(fields)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewForbiddenError creates a permission error
func NewForbiddenError() error {
	return apierr.NewForbiddenError()
}
