// Package refresh exchanges a refresh token and identity id for a new access
// token. The exchange is a single call; callers decide what a failure means.
package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/tracker-web/internal/errors"
	"github.com/jrsteele09/tracker-web/session"
)

const (
	refreshPath        = "/auth/refresh"
	refreshTokenHeader = "Refresh-Token"
	identityParam      = "id"
	maxErrorBody       = 4 << 10
)

// Refresher is the contract the request interceptor depends on.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken, identityID string) (*Tokens, error)
}

// Error is returned for every failed exchange. StatusCode is zero when the
// backend could not be reached.
type Error struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("token refresh failed: status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("token refresh failed: %v", e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{errors.ErrRefreshFailed, e.Err}
}

// Client calls the backend refresh endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Refresher = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// NewClient builds a refresh client against baseURL. The default client has no
// timeout of its own, the transport defaults apply.
func NewClient(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *Client) Refresh(ctx context.Context, refreshToken, identityID string) (*Tokens, error) {
	if refreshToken == "" || identityID == "" {
		return nil, &Error{Err: errors.ErrMissingCredentials}
	}

	endpoint := c.baseURL + refreshPath + "?" + url.Values{identityParam: {identityID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, &Error{Err: err}
	}
	req.Header.Set(refreshTokenHeader, refreshToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			Err:        errors.FromStatus(resp.StatusCode),
		}
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &Error{Err: fmt.Errorf("decode response: %w", err)}
	}
	return payload.tokens()
}

func (r Response) tokens() (*Tokens, error) {
	if r.AccessToken == "" {
		return nil, &Error{Err: errors.Wrapf(errors.ErrInvalidToken, "empty access_token")}
	}
	accessExpiry, err := session.ResolveExpiry(r.AccessToken, r.AccessTokenExpiry)
	if err != nil {
		return nil, &Error{Err: err}
	}

	tokens := &Tokens{
		AccessToken:       r.AccessToken,
		AccessTokenExpiry: accessExpiry,
	}
	if r.RefreshToken != "" {
		var refreshExpiry time.Time
		if refreshExpiry, err = session.ResolveExpiry(r.RefreshToken, r.RefreshTokenExpiry); err != nil {
			return nil, &Error{Err: err}
		}
		tokens.RefreshToken = r.RefreshToken
		tokens.RefreshTokenExpiry = refreshExpiry
	}
	return tokens, nil
}
