package server

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/tracker-web/api"
	"github.com/jrsteele09/tracker-web/internal/errors"
	"github.com/jrsteele09/tracker-web/issues"
	"github.com/jrsteele09/tracker-web/users"
	"github.com/jrsteele09/tracker-web/workspaces"
	"github.com/rs/zerolog"
)

// indexPage is the landing data for a user with no workspace yet.
type indexPage struct {
	User       *users.User            `json:"user"`
	Workspaces []workspaces.Workspace `json:"workspaces"`
	APIBaseURL string                 `json:"api_base_url"`
	Errors     map[string]string      `json:"errors,omitempty"`
}

type workspacePage struct {
	Slug      string                `json:"slug"`
	Workspace *workspaces.Workspace `json:"workspace"`
	Role      string                `json:"role"`
}

type workspaceHomePage struct {
	workspacePage
	Issues []issues.Issue                   `json:"issues"`
	Board  map[issues.Status][]issues.Issue `json:"board"`
	Errors map[string]string                `json:"errors,omitempty"`
}

// IndexHandler sends the user to their first workspace, or returns the
// landing data when they have none.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc := s.accessorsFor(r)

		var (
			wg     sync.WaitGroup
			user   api.Result[*users.User]
			spaces api.Result[[]workspaces.Workspace]
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			user = api.Capture(acc.Users.Current(r.Context()))
		}()
		go func() {
			defer wg.Done()
			spaces = api.Capture(acc.Workspaces.List(r.Context()))
		}()
		wg.Wait()

		for _, err := range []error{user.Err, spaces.Err} {
			if err != nil && s.handlePageError(w, r, err) {
				return
			}
		}

		if spaces.OK() && len(spaces.Value) > 0 {
			redirectTemporary(w, r, workspacePath(spaces.Value[0].Slug))
			return
		}

		page := indexPage{
			User:       user.Value,
			Workspaces: spaces.Value,
			APIBaseURL: s.config.GetClientBaseURL(),
			Errors:     pageErrors(r, map[string]error{"user": user.Err, "workspaces": spaces.Err}),
		}
		if page.Workspaces == nil {
			page.Workspaces = []workspaces.Workspace{}
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func (s *Server) WorkspacePageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		ws, err := s.accessorsFor(r).Workspaces.Get(r.Context(), slug)
		if err != nil {
			if s.handlePageError(w, r, err) {
				return
			}
			if errors.Is(err, errors.ErrNotFound) {
				redirectTemporary(w, r, RouteIndex)
				return
			}
			s.handleAPIError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, workspacePage{Slug: slug, Workspace: ws, Role: ws.RoleName()})
	}
}

// WorkspaceHomeHandler loads the workspace and its issues side by side. The
// workspace decides where the user ends up; a failed issue load still renders
// the page.
func (s *Server) WorkspaceHomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		acc := s.accessorsFor(r)

		var (
			wg    sync.WaitGroup
			ws    api.Result[*workspaces.Workspace]
			items api.Result[[]issues.Issue]
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			ws = api.Capture(acc.Workspaces.Get(r.Context(), slug))
		}()
		go func() {
			defer wg.Done()
			items = api.Capture(acc.Issues.List(r.Context(), slug))
		}()
		wg.Wait()

		if !ws.OK() {
			switch {
			case errors.Is(ws.Err, errors.ErrNotFound):
				redirectTemporary(w, r, RouteNotFound)
			case s.handlePageError(w, r, ws.Err):
			case errors.Is(ws.Err, errors.ErrServer):
				zerolog.Ctx(r.Context()).Error().Err(ws.Err).Str("slug", slug).Msg("workspace load failed")
				redirectTemporary(w, r, RouteIndex)
			default:
				s.handleAPIError(w, r, ws.Err)
			}
			return
		}
		if items.Err != nil && s.handlePageError(w, r, items.Err) {
			return
		}

		list := issues.NewList(items.Value)
		writeJSON(w, http.StatusOK, workspaceHomePage{
			workspacePage: workspacePage{Slug: slug, Workspace: ws.Value, Role: ws.Value.RoleName()},
			Issues:        list.Items(),
			Board:         list.ByStatus(),
			Errors:        pageErrors(r, map[string]error{"issues": items.Err}),
		})
	}
}

// pageErrors turns the failed branches of a page load into messages for the
// view, logging each one.
func pageErrors(r *http.Request, branches map[string]error) map[string]string {
	var out map[string]string
	for name, err := range branches {
		if err == nil {
			continue
		}
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("branch", name).Msg("page data partially loaded")
		if out == nil {
			out = make(map[string]string)
		}
		out[name] = errorText(err)
	}
	return out
}

func errorText(err error) string {
	switch {
	case errors.Is(err, errors.ErrNotFound):
		return "not found"
	case errors.Is(err, errors.ErrServer):
		return serverErrorText
	default:
		return backendMessage(err)
	}
}
