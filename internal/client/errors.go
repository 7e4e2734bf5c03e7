package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrLoginRequired is surfaced when the session cannot be refreshed and the
// user must authenticate again
var ErrLoginRequired = errors.New("session expired: please log in again")

// APIError is a non-validation failure response from the backend
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// FieldErrors maps field names to human-readable messages. Both local
// validation failures and server-side conflicts are surfaced through this
// type so the experience is uniform regardless of where the violation was
// caught.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// parseError turns an error response body into the richest error it can:
// a FieldErrors map for validation-style bodies, otherwise an APIError
// carrying the server's message.
func parseError(status int, body []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		return &APIError{Status: status, Message: strings.TrimSpace(string(body))}
	}

	// Single-message envelopes
	for _, key := range []string{"error", "detail", "message"} {
		if v, ok := raw[key]; ok {
			var msg string
			if json.Unmarshal(v, &msg) == nil {
				return &APIError{Status: status, Message: msg}
			}
		}
	}

	// Field error bodies: {"field": ["msg", ...]} or {"field": "msg"}
	fields := make(FieldErrors)
	for name, v := range raw {
		var msgs []string
		if json.Unmarshal(v, &msgs) == nil && len(msgs) > 0 {
			fields[name] = msgs[0]
			continue
		}
		var msg string
		if json.Unmarshal(v, &msg) == nil {
			fields[name] = msg
		}
	}
	if len(fields) > 0 {
		return fields
	}

	return &APIError{Status: status, Message: strings.TrimSpace(string(body))}
}

// normalizeConflicts rewrites known uniqueness-conflict messages onto the
// wording the forms use, so a remote duplicate reads like a local error
func normalizeConflicts(err error) error {
	var fields FieldErrors
	if !errors.As(err, &fields) {
		return err
	}

	for field, friendly := range map[string]string{
		"email":                   "Email already exists",
		"id_num":                  "ID number already exists",
		"umpire_certification_id": "Certification ID already exists",
	} {
		if msg, ok := fields[field]; ok && strings.Contains(msg, "already exists") {
			fields[field] = friendly
		}
	}
	return fields
}
