// Package session manages the three cookies that carry a signed-in user's
// credentials between the browser and the edge server.
package session

import (
	"net/http"
	"strings"
)

// Note the browser keeps these across deploys, changing them signs every user out
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
	IdentityCookie     = "cognito_id"
)

// Credentials is the set of session values carried by one inbound request.
// Any of the fields may be empty.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	IdentityID   string
}

// CanRefresh reports whether a missing access token can be re-minted.
func (c Credentials) CanRefresh() bool {
	return c.AccessToken == "" && c.RefreshToken != "" && c.IdentityID != ""
}

// Read loads the credentials held in the store.
func Read(store Store) Credentials {
	access, _ := store.Get(AccessTokenCookie)
	refresh, _ := store.Get(RefreshTokenCookie)
	identity, _ := store.Get(IdentityCookie)
	return Credentials{
		AccessToken:  access,
		RefreshToken: refresh,
		IdentityID:   identity,
	}
}

// Clear deletes every session cookie.
func Clear(store Store) {
	store.Delete(AccessTokenCookie)
	store.Delete(RefreshTokenCookie)
	store.Delete(IdentityCookie)
}

// AccessToken returns the bearer token for r. A token placed in the
// Authorization header earlier in the chain takes precedence over the cookie.
func AccessToken(r *http.Request) string {
	if token, ok := BearerToken(r.Header.Get("Authorization")); ok {
		return token
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(value string) (string, bool) {
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// SetBearer replaces the Authorization header of r.
func SetBearer(r *http.Request, token string) {
	r.Header.Set("Authorization", "Bearer "+token)
}
