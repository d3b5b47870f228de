package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jrsteele09/tracker-web/api"
	"github.com/jrsteele09/tracker-web/internal/errors"
	"github.com/jrsteele09/tracker-web/session"
	"github.com/rs/zerolog"
)

const maxRequestBody = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a bounded JSON body into T.
func decodeJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(&v); err != nil {
		return v, errors.Wrapf(errors.ErrInvalidRequest, "[server decodeJSON] %v", err)
	}
	return v, nil
}

// redirectSuccess sends a browser that submitted a form on to path.
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectTemporary is the page-load redirect, it keeps the request method.
func redirectTemporary(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusTemporaryRedirect)
}

// endSession drops every session cookie, used once the backend has rejected
// the caller's token.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	session.Clear(s.cookieStore(w, r))
}

// handlePageError applies the session policy to a failed page load. It
// returns false when err is not a session or input problem and the caller
// decides the outcome.
func (s *Server) handlePageError(w http.ResponseWriter, r *http.Request, err error) bool {
	if api.IsSessionInvalid(err) {
		zerolog.Ctx(r.Context()).Info().Err(err).Msg("backend rejected session")
		s.endSession(w, r)
		redirectTemporary(w, r, RouteSignIn)
		return true
	}
	return false
}

// handleAPIError applies the session policy to a failed data request.
func (s *Server) handleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())
	switch {
	case api.IsSessionInvalid(err):
		logger.Info().Err(err).Msg("backend rejected session")
		s.endSession(w, r)
		writeError(w, http.StatusUnauthorized, "session expired")
	case errors.Is(err, errors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, clientMessage(err))
	case errors.Is(err, errors.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, errors.ErrBadRequest):
		writeError(w, http.StatusBadRequest, backendMessage(err))
	default:
		logger.Error().Err(err).Msg("backend request failed")
		writeError(w, http.StatusBadGateway, "SERVER: There is currently server issues, please try again later.")
	}
}

// backendMessage prefers the message the backend sent with its rejection.
func backendMessage(err error) string {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		if msg := httpErr.Message(); msg != "" {
			return msg
		}
		return fmt.Sprintf("request rejected with status %d", httpErr.StatusCode)
	}
	return err.Error()
}

// clientMessage strips the "[pkg Func] " call-site prefixes and the trailing
// sentinel from an input error, leaving the part meant for the user.
func clientMessage(err error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+errors.ErrInvalidRequest.Error())
	for strings.HasPrefix(msg, "[") {
		end := strings.Index(msg, "] ")
		if end < 0 {
			break
		}
		msg = msg[end+2:]
	}
	return msg
}
