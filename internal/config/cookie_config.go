package config

import (
	"time"
)

type CookieConfig interface {
	GetSecureCookies() bool
	GetCookieExpiryBuffer() time.Duration
}

type Cookies struct{}

var _ CookieConfig = Cookies{}

// GetSecureCookies marks session cookies Secure outside of local development.
func (Cookies) GetSecureCookies() bool {
	return EnvVars{}.IsProduction()
}

// GetCookieExpiryBuffer is subtracted from every token expiry so a cookie is
// dropped by the browser before the backend would reject its token.
func (Cookies) GetCookieExpiryBuffer() time.Duration {
	return 2 * time.Second
}
