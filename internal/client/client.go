// Package client implements the authenticated HTTP client for the club API.
//
// Every authenticated call attaches the stored access token. When a call is
// rejected as unauthorized, the client obtains a new access token with the
// stored refresh token and retries the original call exactly once; a failed
// refresh clears the session and surfaces ErrLoginRequired. There is no
// backoff and no coordination between concurrent callers: each performs its
// own refresh-and-retry independently, last write wins.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/masego-dev/clubctl/internal/session"
)

// Client is an HTTP client for the club API
type Client struct {
	baseURL    string
	sessions   session.Store
	httpClient *http.Client
}

// New creates a new API client backed by the given session store
func New(baseURL string, sessions session.Store) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		sessions: sessions,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Sessions returns the client's session store
func (c *Client) Sessions() session.Store {
	return c.sessions
}

// request describes one outbound call. The body is held as bytes so an
// identical request can be reissued after a token refresh.
type request struct {
	method      string
	path        string
	body        []byte
	contentType string
	// authenticated requests carry the bearer token and participate in
	// the refresh-and-retry flow
	authenticated bool
}

// doJSON issues a JSON request and decodes a JSON response into result
func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any, authenticated bool) error {
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	return c.do(ctx, request{
		method:        method,
		path:          path,
		body:          data,
		contentType:   "application/json",
		authenticated: authenticated,
	}, result)
}

// doMultipart issues a multipart/form-data request and decodes a JSON
// response into result
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, files []FormFile, result any, authenticated bool) error {
	body, contentType, err := encodeMultipart(fields, files)
	if err != nil {
		return err
	}

	return c.do(ctx, request{
		method:        method,
		path:          path,
		body:          body,
		contentType:   contentType,
		authenticated: authenticated,
	}, result)
}

// do sends the request, applying the refresh-and-retry contract for
// authenticated calls
func (c *Client) do(ctx context.Context, req request, result any) error {
	token := ""
	if req.authenticated {
		if sess, ok := c.sessions.Current(); ok {
			token = sess.AccessToken
		}
	}

	status, body, err := c.send(ctx, req, token)
	if err != nil {
		return err
	}

	if req.authenticated && status == http.StatusUnauthorized {
		// The stored access token was rejected; refresh once and retry
		// once. Any refresh failure means the user must log in again.
		newToken, err := c.refreshAccessToken(ctx)
		if err != nil {
			return err
		}

		status, body, err = c.send(ctx, req, newToken)
		if err != nil {
			return err
		}
	}

	if status >= 400 {
		return parseError(status, body)
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// send issues a single HTTP call and reads the full response body
func (c *Client) send(ctx context.Context, req request, token string) (int, []byte, error) {
	var bodyReader io.Reader
	if req.body != nil {
		bodyReader = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if req.body != nil {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// refreshAccessToken exchanges the stored refresh token for a new access
// token and persists it. Without a stored refresh token it fails immediately
// and performs no network call.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	sess, ok := c.sessions.Current()
	if !ok || sess.RefreshToken == "" {
		return "", ErrLoginRequired
	}

	payload, err := json.Marshal(map[string]string{"refresh": sess.RefreshToken})
	if err != nil {
		return "", err
	}

	status, body, err := c.send(ctx, request{
		method:      http.MethodPost,
		path:        "/api/token/refresh/",
		body:        payload,
		contentType: "application/json",
	}, "")
	if err != nil {
		return "", err
	}

	if status != http.StatusOK {
		// The refresh token itself is no longer usable; the session is
		// destroyed so the next attempt goes straight to login.
		_ = c.sessions.Clear()
		return "", ErrLoginRequired
	}

	var refreshed struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &refreshed); err != nil || refreshed.Access == "" {
		_ = c.sessions.Clear()
		return "", ErrLoginRequired
	}

	if err := c.sessions.SetAccessToken(refreshed.Access); err != nil {
		return "", err
	}
	return refreshed.Access, nil
}
