package server_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jrsteele09/tracker-web/internal/errors"
	"github.com/jrsteele09/tracker-web/issues"
	"github.com/jrsteele09/tracker-web/server"
	"github.com/jrsteele09/tracker-web/workspaces"
	fakeworkspacerepo "github.com/jrsteele09/tracker-web/workspaces/repofake"
	"github.com/stretchr/testify/require"
)

var (
	alpha = workspaces.Workspace{ID: 1, Name: "Alpha", Slug: "alpha", Role: "workspace:admin"}
	beta  = workspaces.Workspace{ID: 2, Name: "Beta", Slug: "beta", Role: "workspace:member"}
)

func TestIndexHandler(t *testing.T) {
	t.Run("no session goes to sign in", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodGet, "/", nil)
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		require.Equal(t, server.RouteSignIn, rec.Header().Get("Location"))
		require.Empty(t, f.seenTokens())
	})

	t.Run("redirects to the first workspace", func(t *testing.T) {
		f := newFixture(t)
		f.workspaces = fakeworkspacerepo.NewFakeWorkspaceRepo(beta, alpha)

		rec := f.do(http.MethodGet, "/", nil, accessCookie("A"))
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		require.Equal(t, "/workspace/alpha", rec.Header().Get("Location"))
		require.Equal(t, []string{"A"}, f.seenTokens())
	})

	t.Run("landing data without workspaces", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodGet, "/", nil, accessCookie("A"))
		require.Equal(t, http.StatusOK, rec.Code)

		var page struct {
			User       map[string]any    `json:"user"`
			Workspaces []any             `json:"workspaces"`
			APIBaseURL string            `json:"api_base_url"`
			Errors     map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Equal(t, "Ada", page.User["name"])
		require.NotNil(t, page.Workspaces)
		require.Empty(t, page.Workspaces)
		require.Equal(t, "http://views.test", page.APIBaseURL)
		require.Empty(t, page.Errors)
	})

	t.Run("one failed branch still renders", func(t *testing.T) {
		f := newFixture(t)
		f.users.Fail(errors.ErrServer)
		rec := f.do(http.MethodGet, "/", nil, accessCookie("A"))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"user":"SERVER:`)
	})

	t.Run("rejected token ends the session", func(t *testing.T) {
		f := newFixture(t)
		f.workspaces.Fail(errors.ErrUnauthorized)
		rec := f.do(http.MethodGet, "/", nil, accessCookie("A"))
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		require.Equal(t, server.RouteSignIn, rec.Header().Get("Location"))
		requireCleared(t, rec)
	})
}

func TestWorkspacePageHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.workspaces = fakeworkspacerepo.NewFakeWorkspaceRepo(alpha)
		rec := f.do(http.MethodGet, "/workspace/alpha", nil, accessCookie("A"))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"role":"Admin"`)
	})

	t.Run("unknown workspace goes home", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodGet, "/workspace/nope", nil, accessCookie("A"))
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		require.Equal(t, server.RouteIndex, rec.Header().Get("Location"))
	})
}

func TestWorkspaceHomeHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		location string
	}{
		{"not found", errors.ErrNotFound, server.RouteNotFound},
		{"unauthorized", errors.ErrUnauthorized, server.RouteSignIn},
		{"server error", errors.ErrServer, server.RouteIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.workspaces.Fail(tt.err)
			rec := f.do(http.MethodGet, "/workspace/alpha/home", nil, accessCookie("A"))
			require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
			require.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}

	t.Run("workspace and board", func(t *testing.T) {
		f := newFixture(t)
		f.workspaces = fakeworkspacerepo.NewFakeWorkspaceRepo(alpha)
		f.issues.Seed("alpha",
			issues.Issue{ID: 1, Title: "one", Status: issues.StatusTodo, Priority: issues.PriorityLow},
			issues.Issue{ID: 2, Title: "two", Status: issues.StatusDone, Priority: issues.PriorityHigh},
		)

		rec := f.do(http.MethodGet, "/workspace/alpha/home", nil, accessCookie("A"))
		require.Equal(t, http.StatusOK, rec.Code)

		var page struct {
			Slug   string                           `json:"slug"`
			Role   string                           `json:"role"`
			Issues []issues.Issue                   `json:"issues"`
			Board  map[issues.Status][]issues.Issue `json:"board"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Equal(t, "alpha", page.Slug)
		require.Equal(t, "Admin", page.Role)
		require.Len(t, page.Issues, 2)
		require.Len(t, page.Board[issues.StatusTodo], 1)
		require.Len(t, page.Board[issues.StatusDone], 1)
	})

	t.Run("failed issues still render the workspace", func(t *testing.T) {
		f := newFixture(t)
		f.workspaces = fakeworkspacerepo.NewFakeWorkspaceRepo(alpha)
		f.issues.Fail(errors.ErrServer)

		rec := f.do(http.MethodGet, "/workspace/alpha/home", nil, accessCookie("A"))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"issues":[]`)
		require.Contains(t, rec.Body.String(), `"errors":{"issues"`)
	})
}
