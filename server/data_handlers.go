package server

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/tracker-web/internal/errors"
	"github.com/jrsteele09/tracker-web/issues"
	"github.com/jrsteele09/tracker-web/requests"
)

const (
	maxImageUpload = 10 << 20
	imageFormField = "file"
)

type inviteRequest struct {
	Username string `json:"username"`
}

type imageResponse struct {
	URL string `json:"url"`
}

func issueID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(errors.ErrInvalidRequest, "[server issueID] %q is not an issue id", chi.URLParam(r, "id"))
	}
	return id, nil
}

func (s *Server) ListIssuesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.accessorsFor(r).Issues.List(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, issues.NewList(list).Items())
	}
}

func (s *Server) GetIssueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := issueID(r)
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		issue, err := s.accessorsFor(r).Issues.Get(r.Context(), chi.URLParam(r, "slug"), id)
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, issue)
	}
}

func (s *Server) CreateIssueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		create, err := decodeJSON[issues.CreateIssue](r)
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		issue, err := s.accessorsFor(r).Issues.Create(r.Context(), chi.URLParam(r, "slug"), create)
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, issue)
	}
}

func (s *Server) UpdateIssueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := issueID(r)
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		update, err := decodeJSON[issues.UpdateIssue](r)
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		issue, err := s.accessorsFor(r).Issues.Update(r.Context(), chi.URLParam(r, "slug"), id, update)
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, issue)
	}
}

func (s *Server) InviteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invite, err := decodeJSON[inviteRequest](r)
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		if err := s.accessorsFor(r).Requests.Invite(r.Context(), chi.URLParam(r, "slug"), invite.Username); err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ListRequestsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.accessorsFor(r).Requests.List(r.Context())
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		if list == nil {
			list = []requests.Request{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) AnswerRequestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		answer, err := decodeJSON[requests.Answer](r)
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		if err := s.accessorsFor(r).Requests.Answer(r.Context(), answer.Answer, answer.WorkspaceID); err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// UploadImageHandler forwards a single multipart image to the backend and
// returns where it was stored.
func (s *Server) UploadImageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload)
		file, header, err := r.FormFile(imageFormField)
		if err != nil {
			s.handleAPIError(w, r, errors.Wrapf(errors.ErrInvalidRequest, "[server UploadImageHandler] %v", err))
			return
		}
		defer file.Close()

		if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
			s.handleAPIError(w, r, errors.Wrapf(errors.ErrInvalidRequest, "[server UploadImageHandler] %s is not an image", ct))
			return
		}

		url, err := s.accessorsFor(r).Files.UploadImage(r.Context(), filepath.Base(header.Filename), file)
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, imageResponse{URL: url})
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
