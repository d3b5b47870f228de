package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jrsteele09/tracker-web/internal/errors"
	"github.com/jrsteele09/tracker-web/session"
	"github.com/rs/zerolog"
)

// callbackPayload is the token set the identity provider flow hands back,
// base64 encoded JSON in the data query parameter.
type callbackPayload struct {
	Message            string `json:"message"`
	Email              string `json:"email"`
	AccessToken        string `json:"access_token"`
	AccessTokenExpiry  string `json:"access_token_expiry"`
	RefreshToken       string `json:"refresh_token"`
	RefreshTokenExpiry string `json:"refresh_token_expiry"`
}

// AuthCallbackHandler finishes an external sign-in by storing the tokens it
// carries.
func (s *Server) AuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		encoded := r.URL.Query().Get("data")
		if encoded == "" {
			redirectTemporary(w, r, RouteSignIn)
			return
		}

		payload, err := decodeCallback(encoded)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("malformed auth callback")
			writeError(w, http.StatusBadRequest, "malformed callback data")
			return
		}

		err = s.cookies.SetTokens(s.cookieStore(w, r),
			session.Token{Name: session.AccessTokenCookie, Value: payload.AccessToken, Expiry: payload.AccessTokenExpiry},
			session.Token{Name: session.RefreshTokenCookie, Value: payload.RefreshToken, Expiry: payload.RefreshTokenExpiry},
		)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("auth callback tokens")
			writeError(w, http.StatusBadRequest, "malformed callback data")
			return
		}

		zerolog.Ctx(r.Context()).Info().Str("email", payload.Email).Msg("signed in through callback")
		redirectTemporary(w, r, RouteIndex)
	}
}

func decodeCallback(encoded string) (callbackPayload, error) {
	var payload callbackPayload

	raw, err := decodeBase64(encoded)
	if err != nil {
		return payload, errors.Wrapf(errors.ErrInvalidRequest, "[server decodeCallback] base64: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, errors.Wrapf(errors.ErrInvalidRequest, "[server decodeCallback] json: %v", err)
	}
	if payload.AccessToken == "" || payload.RefreshToken == "" {
		return payload, errors.Wrapf(errors.ErrInvalidToken, "[server decodeCallback] missing tokens")
	}
	return payload, nil
}

// decodeBase64 accepts standard and URL alphabets, padded or not. A '+' left
// unescaped in the query string arrives as a space.
func decodeBase64(s string) ([]byte, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "+")
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if raw, err := enc.DecodeString(s); err == nil {
			return raw, nil
		}
	}
	return base64.StdEncoding.DecodeString(s)
}
