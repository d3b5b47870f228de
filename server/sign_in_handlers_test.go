package server_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/tracker-web/api"
	"github.com/jrsteele09/tracker-web/server"
	"github.com/jrsteele09/tracker-web/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expiryIn(d time.Duration) string {
	return time.Now().Add(d).UTC().Format(time.RFC3339)
}

func loginBackend(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	calls := &atomic.Int32{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var form server.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		assert.Equal(t, "ada@example.com", form.Email)
		assert.Equal(t, "secret", form.Password)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(backend.Close)
	return backend, calls
}

func signInFixture(t *testing.T, backend *httptest.Server) *fixture {
	factory := api.NewFactory(backend.URL, api.WithRetryWait(time.Millisecond, time.Millisecond))
	return newFixture(t, server.WithAPIFactory(factory))
}

func TestSignInHandler(t *testing.T) {
	form := url.Values{"email": {"ada@example.com"}, "password": {"secret"}}

	postForm := func(f *fixture, values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, server.RouteSignIn, strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		f.srv.ServeHTTP(rec, req)
		return rec
	}

	t.Run("sets the three session cookies", func(t *testing.T) {
		body, err := json.Marshal(map[string]string{
			"access_token":         "A",
			"access_token_expiry":  expiryIn(time.Hour),
			"refresh_token":        "R",
			"refresh_token_expiry": expiryIn(24 * time.Hour),
			"cognito_id":           "I",
			"cognito_id_expiry":    expiryIn(24 * time.Hour),
		})
		require.NoError(t, err)
		backend, calls := loginBackend(t, http.StatusOK, string(body))
		f := signInFixture(t, backend)

		rec := postForm(f, form)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, server.RouteIndex, rec.Header().Get("Location"))
		require.EqualValues(t, 1, calls.Load())

		for name, value := range map[string]string{
			session.AccessTokenCookie:  "A",
			session.RefreshTokenCookie: "R",
			session.IdentityCookie:     "I",
		} {
			c := responseCookie(rec, name)
			require.NotNil(t, c, name)
			require.Equal(t, value, c.Value)
			require.Positive(t, c.MaxAge)
			require.True(t, c.HttpOnly)
		}
	})

	t.Run("accepts json", func(t *testing.T) {
		body := `{"access_token":"A","access_token_expiry":"` + expiryIn(time.Hour) +
			`","refresh_token":"R","refresh_token_expiry":"` + expiryIn(time.Hour) +
			`","cognito_id":"I"}`
		backend, _ := loginBackend(t, http.StatusOK, body)
		f := signInFixture(t, backend)

		rec := f.do(http.MethodPost, server.RouteSignIn, strings.NewReader(`{"email":"ada@example.com","password":"secret"}`))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.NotNil(t, responseCookie(rec, session.IdentityCookie))
	})

	t.Run("rejected credentials", func(t *testing.T) {
		backend, calls := loginBackend(t, http.StatusUnauthorized, `{"message":"wrong password"}`)
		f := signInFixture(t, backend)

		rec := postForm(f, form)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"error":"CREDENTIALS: wrong password"}`, rec.Body.String())
		require.EqualValues(t, 1, calls.Load())
		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("backend failure", func(t *testing.T) {
		backend, calls := loginBackend(t, http.StatusInternalServerError, `{}`)
		f := signInFixture(t, backend)

		rec := postForm(f, form)
		require.Equal(t, http.StatusBadGateway, rec.Code)
		require.Contains(t, rec.Body.String(), "SERVER:")
		require.EqualValues(t, 3, calls.Load())
	})

	t.Run("unusable expiry stores no cookies", func(t *testing.T) {
		for name, body := range map[string]string{
			"bad refresh expiry": `{"access_token":"A","access_token_expiry":"` + expiryIn(time.Hour) +
				`","refresh_token":"R","refresh_token_expiry":"garbage","cognito_id":"I","cognito_id_expiry":"` + expiryIn(time.Hour) + `"}`,
			"no identity or refresh expiry": `{"access_token":"A","access_token_expiry":"` + expiryIn(time.Hour) +
				`","refresh_token":"R","cognito_id":"I"}`,
		} {
			backend, _ := loginBackend(t, http.StatusOK, body)
			f := signInFixture(t, backend)

			rec := postForm(f, form)
			require.Equal(t, http.StatusBadGateway, rec.Code, name)
			require.Contains(t, rec.Body.String(), "SERVER:", name)
			require.Empty(t, rec.Result().Cookies(), name)
		}
	})

	t.Run("invalid email never reaches the backend", func(t *testing.T) {
		backend, calls := loginBackend(t, http.StatusOK, `{}`)
		f := signInFixture(t, backend)

		rec := postForm(f, url.Values{"email": {"not-an-email"}, "password": {"secret"}})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "valid email")
		require.Zero(t, calls.Load())
	})
}

func TestSignInPageHandler(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, server.RouteSignIn+"?error=expired", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"signed_in":false,"error":"expired"}`, rec.Body.String())

	rec = f.do(http.MethodGet, server.RouteSignIn, nil, accessCookie("A"))
	require.JSONEq(t, `{"signed_in":true}`, rec.Body.String())
}

func TestSignOutHandler(t *testing.T) {
	f := newFixture(t)
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rec := f.do(method, server.RouteSignOut, nil, accessCookie("A"))
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, server.RouteSignIn, rec.Header().Get("Location"))
		requireCleared(t, rec)
	}
}

func TestAuthCallbackHandler(t *testing.T) {
	encode := func(v any) string {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		return url.QueryEscape(base64.StdEncoding.EncodeToString(raw))
	}

	t.Run("stores tokens and goes home", func(t *testing.T) {
		f := newFixture(t)
		data := encode(map[string]string{
			"message":              "ok",
			"email":                "ada@example.com",
			"access_token":         "A",
			"access_token_expiry":  expiryIn(time.Hour),
			"refresh_token":        "R",
			"refresh_token_expiry": expiryIn(time.Hour),
		})

		rec := f.do(http.MethodGet, server.RouteAuthCallback+"?data="+data, nil)
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		require.Equal(t, server.RouteIndex, rec.Header().Get("Location"))
		require.Equal(t, "A", responseCookie(rec, session.AccessTokenCookie).Value)
		require.Equal(t, "R", responseCookie(rec, session.RefreshTokenCookie).Value)
		require.Nil(t, responseCookie(rec, session.IdentityCookie))
	})

	t.Run("missing data", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(http.MethodGet, server.RouteAuthCallback, nil)
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		require.Equal(t, server.RouteSignIn, rec.Header().Get("Location"))
	})

	t.Run("bad refresh expiry stores no cookies", func(t *testing.T) {
		f := newFixture(t)
		data := encode(map[string]string{
			"access_token":         "A",
			"access_token_expiry":  expiryIn(time.Hour),
			"refresh_token":        "R",
			"refresh_token_expiry": "garbage",
		})

		rec := f.do(http.MethodGet, server.RouteAuthCallback+"?data="+data, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Nil(t, responseCookie(rec, session.AccessTokenCookie))
		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("malformed data", func(t *testing.T) {
		f := newFixture(t)
		for _, data := range []string{"!!!", url.QueryEscape(base64.StdEncoding.EncodeToString([]byte("not json"))), encode(map[string]string{"message": "no tokens"})} {
			rec := f.do(http.MethodGet, server.RouteAuthCallback+"?data="+data, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code, data)
			require.Empty(t, rec.Result().Cookies())
		}
	})
}

func TestHealthHandler(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, server.RouteHealth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	require.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
}
