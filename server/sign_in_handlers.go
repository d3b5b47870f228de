package server

import (
	"mime"
	"net/http"
	"net/mail"
	"strings"

	"github.com/jrsteele09/tracker-web/api"
	"github.com/jrsteele09/tracker-web/internal/errors"
	"github.com/jrsteele09/tracker-web/session"
	"github.com/rs/zerolog"
)

const (
	credentialsPrefix = "CREDENTIALS: "
	serverErrorText   = "SERVER: There is currently server issues, please try again later."
)

// LoginRequest is the sign-in form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the form before it is sent to the backend.
func (l LoginRequest) Validate() error {
	if l.Email == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "email is required")
	}
	addr, err := mail.ParseAddress(l.Email)
	if err != nil || addr.Address != l.Email {
		return errors.Wrapf(errors.ErrInvalidRequest, "Please provide valid email address")
	}
	return nil
}

// loginResponse is what the backend returns for a successful sign-in.
type loginResponse struct {
	AccessToken        string `json:"access_token"`
	AccessTokenExpiry  string `json:"access_token_expiry"`
	RefreshToken       string `json:"refresh_token"`
	RefreshTokenExpiry string `json:"refresh_token_expiry"`
	IdentityID         string `json:"cognito_id"`
	IdentityExpiry     string `json:"cognito_id_expiry"`
}

type signInPage struct {
	SignedIn bool   `json:"signed_in"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) SignInPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, signInPage{
			SignedIn: session.AccessToken(r) != "",
			Error:    r.URL.Query().Get("error"),
		})
	}
}

// SignInHandler exchanges the sign-in form for the three session cookies.
func (s *Server) SignInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		form, err := readLoginForm(r)
		if err == nil {
			err = form.Validate()
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, clientMessage(err))
			return
		}

		var resp loginResponse
		err = s.api.Public().Post(r.Context(), "auth/login", form, &resp)
		if err != nil {
			var httpErr *api.HTTPError
			if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
				writeError(w, http.StatusUnauthorized, credentialsPrefix+httpErr.Message())
				return
			}
			logger.Error().Err(err).Msg("sign-in failed")
			writeError(w, http.StatusBadGateway, serverErrorText)
			return
		}

		if err := s.storeLogin(s.cookieStore(w, r), resp); err != nil {
			logger.Error().Err(err).Msg("sign-in returned unusable tokens")
			writeError(w, http.StatusBadGateway, serverErrorText)
			return
		}
		logger.Info().Msg("signed in")
		redirectSuccess(w, r, RouteIndex)
	}
}

func (s *Server) storeLogin(store session.Store, resp loginResponse) error {
	if resp.AccessToken == "" || resp.RefreshToken == "" || resp.IdentityID == "" {
		return errors.Wrapf(errors.ErrInvalidToken, "[server storeLogin] incomplete sign-in response")
	}
	identityExpiry := resp.IdentityExpiry
	if identityExpiry == "" {
		// The identity lives as long as the refresh token that needs it.
		identityExpiry = resp.RefreshTokenExpiry
	}
	return s.cookies.SetTokens(store,
		session.Token{Name: session.AccessTokenCookie, Value: resp.AccessToken, Expiry: resp.AccessTokenExpiry},
		session.Token{Name: session.RefreshTokenCookie, Value: resp.RefreshToken, Expiry: resp.RefreshTokenExpiry},
		session.Token{Name: session.IdentityCookie, Value: resp.IdentityID, Expiry: identityExpiry},
	)
}

func readLoginForm(r *http.Request) (LoginRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		form, err := decodeJSON[LoginRequest](r)
		form.Email = strings.TrimSpace(form.Email)
		return form, err
	}
	if err := r.ParseForm(); err != nil {
		return LoginRequest{}, errors.Wrapf(errors.ErrInvalidRequest, "[server readLoginForm] %v", err)
	}
	return LoginRequest{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}, nil
}

// SignOutHandler ends the session on this device.
func (s *Server) SignOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.endSession(w, r)
		w.Header().Set("Location", RouteSignIn)
		w.WriteHeader(http.StatusFound)
	}
}
