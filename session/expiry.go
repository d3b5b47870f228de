package session

import (
	"fmt"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/tracker-web/internal/errors"
)

// DefaultExpiryBuffer is taken off every expiry before it becomes a max-age.
const DefaultExpiryBuffer = 2 * time.Second

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// MaxAge converts an absolute expiry into a cookie max-age in whole seconds,
// never negative.
func MaxAge(expiry, now time.Time, buffer time.Duration) int {
	remaining := expiry.Sub(now) - buffer
	if remaining <= 0 {
		return 0
	}
	return int(math.Floor(remaining.Seconds()))
}

// ParseExpiry parses a backend timestamp (RFC 3339, with or without fraction).
func ParseExpiry(expiry string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, expiry)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrInvalidExpiry, "[session ParseExpiry] %q", expiry)
	}
	return t, nil
}

// ResolveExpiry returns the expiry reported by the backend, falling back to
// the exp claim of the token itself. The claim is read without verifying the
// signature; only the backend can verify its own tokens.
func ResolveExpiry(token, expiry string) (time.Time, error) {
	if expiry != "" {
		return ParseExpiry(expiry)
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("[session ResolveExpiry] no expiry and token is not a JWT: %w", errors.Join(errors.ErrInvalidExpiry, err))
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.Wrapf(errors.ErrInvalidExpiry, "[session ResolveExpiry] token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

// Writer persists tokens into a Store with lifetimes derived from their expiry.
type Writer struct {
	Buffer time.Duration
}

func NewWriter(buffer time.Duration) Writer {
	return Writer{Buffer: buffer}
}

// Set stores value under name until expiry, minus the buffer.
func (w Writer) Set(store Store, name, value string, expiry time.Time) int {
	maxAge := MaxAge(expiry, NowTimeFunc(), w.Buffer)
	store.Set(name, value, maxAge)
	return maxAge
}

// Token is a credential as the backend reports it, with an optional RFC 3339
// expiry.
type Token struct {
	Name   string
	Value  string
	Expiry string
}

// SetTokens resolves every expiry before anything is written, so the store
// ends up holding either all of tokens or none of them.
func (w Writer) SetTokens(store Store, tokens ...Token) error {
	expiries := make([]time.Time, len(tokens))
	for i, t := range tokens {
		expiry, err := ResolveExpiry(t.Value, t.Expiry)
		if err != nil {
			return fmt.Errorf("[session SetTokens] %s: %w", t.Name, err)
		}
		expiries[i] = expiry
	}
	for i, t := range tokens {
		w.Set(store, t.Name, t.Value, expiries[i])
	}
	return nil
}
