package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	fakefilerepo "github.com/jrsteele09/tracker-web/files/repofake"
	"github.com/jrsteele09/tracker-web/internal/config"
	"github.com/jrsteele09/tracker-web/internal/errors"
	fakeissuerepo "github.com/jrsteele09/tracker-web/issues/repofake"
	fakerequestrepo "github.com/jrsteele09/tracker-web/requests/repofake"
	"github.com/jrsteele09/tracker-web/server"
	"github.com/jrsteele09/tracker-web/session"
	"github.com/jrsteele09/tracker-web/token/refresh"
	"github.com/jrsteele09/tracker-web/users"
	fakeuserrepo "github.com/jrsteele09/tracker-web/users/repofake"
	fakeworkspacerepo "github.com/jrsteele09/tracker-web/workspaces/repofake"
	"github.com/stretchr/testify/require"
)

type stubRefresher struct {
	calls  atomic.Int32
	tokens *refresh.Tokens
	err    error
}

func (s *stubRefresher) Refresh(_ context.Context, _, _ string) (*refresh.Tokens, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	t := *s.tokens
	return &t, nil
}

type fixture struct {
	users      *fakeuserrepo.FakeUserRepo
	workspaces *fakeworkspacerepo.FakeWorkspaceRepo
	issues     *fakeissuerepo.FakeIssueRepo
	requests   *fakerequestrepo.FakeRequestRepo
	files      *fakefilerepo.FakeFileRepo
	refresher  *stubRefresher
	srv        *server.Server

	lock   sync.Mutex
	tokens []string
}

func newFixture(t *testing.T, options ...server.Option) *fixture {
	t.Helper()
	t.Setenv("CLIENT_BASE_URL", "http://views.test")

	f := &fixture{
		users:      fakeuserrepo.NewFakeUserRepo(&users.User{ID: 1, Name: "Ada", Username: "ada"}),
		workspaces: fakeworkspacerepo.NewFakeWorkspaceRepo(),
		issues:     fakeissuerepo.NewFakeIssueRepo(),
		requests:   fakerequestrepo.NewFakeRequestRepo(),
		files:      fakefilerepo.NewFakeFileRepo("http://cdn.test"),
		refresher:  &stubRefresher{err: errors.ErrRefreshFailed},
	}

	accessors := func(token string) server.Accessors {
		f.lock.Lock()
		f.tokens = append(f.tokens, token)
		f.lock.Unlock()
		return server.Accessors{
			Users:      f.users,
			Workspaces: f.workspaces,
			Issues:     f.issues,
			Requests:   f.requests,
			Files:      f.files,
		}
	}

	options = append([]server.Option{
		server.WithRefresher(f.refresher),
		server.WithAccessors(accessors),
	}, options...)
	f.srv = server.New(config.New(), options...)
	return f
}

// seenTokens lists the bearer tokens the accessors were built with.
func (f *fixture) seenTokens() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string{}, f.tokens...)
}

func (f *fixture) do(method, target string, body io.Reader, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)
	return rec
}

func accessCookie(token string) *http.Cookie {
	return &http.Cookie{Name: session.AccessTokenCookie, Value: token}
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// requireCleared checks that every session cookie was deleted.
func requireCleared(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	for _, name := range []string{session.AccessTokenCookie, session.RefreshTokenCookie, session.IdentityCookie} {
		c := responseCookie(rec, name)
		require.NotNil(t, c, "cookie %s was not deleted", name)
		require.Empty(t, c.Value, name)
		require.Negative(t, c.MaxAge, name)
	}
}
