package refresh

import "time"

// Response is the body returned by the backend's refresh endpoint.
type Response struct {
	// AccessToken is the new short-lived bearer credential.
	AccessToken string `json:"access_token"`

	// AccessTokenExpiry is an RFC 3339 timestamp.
	AccessTokenExpiry string `json:"access_token_expiry"`

	// RefreshToken is only present when the backend rotates refresh tokens.
	RefreshToken string `json:"refresh_token,omitempty"`

	// RefreshTokenExpiry accompanies a rotated RefreshToken.
	RefreshTokenExpiry string `json:"refresh_token_expiry,omitempty"`
}

// Tokens is a validated refresh result.
type Tokens struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// Rotated reports whether the backend issued a replacement refresh token.
func (t *Tokens) Rotated() bool {
	return t.RefreshToken != "" && !t.RefreshTokenExpiry.IsZero()
}
