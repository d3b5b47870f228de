package server

import (
	"net/http"

	"github.com/jrsteele09/tracker-web/session"
	"github.com/jrsteele09/tracker-web/token/refresh"
	"github.com/rs/zerolog"
)

// RefreshTokens re-mints a missing access token from the refresh token and
// identity cookies before the request reaches any handler. A request that
// cannot be refreshed loses its session and is sent to the sign-in page.
// Requests without a refreshable session pass through untouched.
func RefreshTokens(refresher refresh.Refresher, writer session.Writer, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := session.NewCookieStore(w, r, secure)
			creds := session.Read(store)
			if !creds.CanRefresh() {
				next.ServeHTTP(w, r)
				return
			}

			logger := zerolog.Ctx(r.Context())
			tokens, err := refresher.Refresh(r.Context(), creds.RefreshToken, creds.IdentityID)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("token refresh failed, clearing session")
				session.Clear(store)
				w.Header().Set("Location", RouteSignIn)
				w.WriteHeader(http.StatusFound)
				return
			}

			maxAge := writer.Set(store, session.AccessTokenCookie, tokens.AccessToken, tokens.AccessTokenExpiry)
			if tokens.Rotated() {
				writer.Set(store, session.RefreshTokenCookie, tokens.RefreshToken, tokens.RefreshTokenExpiry)
			}
			logger.Debug().Int("max_age", maxAge).Bool("rotated", tokens.Rotated()).Msg("access token refreshed")

			session.SetBearer(r, tokens.AccessToken)
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSessionMiddleware sends page requests without an access token to the
// sign-in page.
func (s *Server) RequireSessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session.AccessToken(r) == "" {
			http.Redirect(w, r, RouteSignIn, http.StatusTemporaryRedirect)
			return
		}
		next(w, r)
	}
}

// RequireAPISessionMiddleware rejects data requests without an access token.
func (s *Server) RequireAPISessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session.AccessToken(r) == "" {
			writeError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		next(w, r)
	}
}
