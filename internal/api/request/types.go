// Package request defines the JSON request bodies accepted by the API.
package request

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the request body for refreshing an access token
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}
