package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/tracker-web/api"
	"github.com/jrsteele09/tracker-web/internal/config"
	"github.com/jrsteele09/tracker-web/session"
	"github.com/jrsteele09/tracker-web/token/refresh"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "PRODUCTION")
	router    chi.Router
	config    config.Config
	api       *api.Factory
	refresher refresh.Refresher
	accessors AccessorFactory
	cookies   session.Writer
}

type Option func(*Server)

// WithAPIFactory replaces the backend client factory.
func WithAPIFactory(f *api.Factory) Option {
	return func(s *Server) {
		s.api = f
	}
}

// WithRefresher replaces the token refresh client.
func WithRefresher(r refresh.Refresher) Option {
	return func(s *Server) {
		s.refresher = r
	}
}

// WithAccessors replaces the per-token resource accessors.
func WithAccessors(f AccessorFactory) Option {
	return func(s *Server) {
		s.accessors = f
	}
}

func New(config config.Config, options ...Option) *Server {
	s := &Server{
		env:     config.GetEnv(),
		config:  config,
		cookies: session.NewWriter(config.GetCookieExpiryBuffer()),
	}
	for _, opt := range options {
		opt(s)
	}

	if s.api == nil {
		s.api = api.NewFactory(config.GetServerBaseURL(), api.WithConfig(config))
	}
	if s.refresher == nil {
		s.refresher = refresh.NewClient(config.GetServerBaseURL())
	}
	if s.accessors == nil {
		s.accessors = APIAccessors(s.api)
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRoutes() {
	if s.env != config.EnvDevelopment {
		return // Skip logging in non-development environments
	}
	_ = chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		log.Debug().Str("method", method).Msg(strings.TrimSuffix(route, "/*"))
		return nil
	})
}

// cookieStore scopes the session cookies to one request.
func (s *Server) cookieStore(w http.ResponseWriter, r *http.Request) *session.CookieStore {
	return session.NewCookieStore(w, r, s.config.GetSecureCookies())
}

// accessorsFor binds the resource accessors to the caller's access token.
func (s *Server) accessorsFor(r *http.Request) Accessors {
	return s.accessors(session.AccessToken(r))
}
