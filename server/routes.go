package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) initRoutes() {
	r := chi.NewRouter()
	r.Use(
		s.RequestIDMiddleware,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.FrameSecurityMiddleware,
		s.CorsMiddleware(),
		RefreshTokens(s.refresher, s.cookies, s.config.GetSecureCookies()),
	)
	s.router = r

	s.RegisterRouteFunc(http.MethodGet, RouteHealth, s.HealthHandler())

	// AUTH
	s.RegisterRouteFunc(http.MethodGet, RouteSignIn, s.SignInPageHandler())
	s.RegisterRouteFunc(http.MethodPost, RouteSignIn, s.SignInHandler())
	s.RegisterRouteFunc(http.MethodGet, RouteSignOut, s.SignOutHandler())
	s.RegisterRouteFunc(http.MethodPost, RouteSignOut, s.SignOutHandler())
	s.RegisterRouteFunc(http.MethodGet, RouteAuthCallback, s.AuthCallbackHandler())

	// PAGES
	s.RegisterRouteFunc(http.MethodGet, RouteIndex, ChainMiddleware(s.IndexHandler(), s.PageMiddleware()...))
	s.RegisterRouteFunc(http.MethodGet, RouteWorkspace, ChainMiddleware(s.WorkspacePageHandler(), s.PageMiddleware()...))
	s.RegisterRouteFunc(http.MethodGet, RouteWorkspaceHome, ChainMiddleware(s.WorkspaceHomeHandler(), s.PageMiddleware()...))

	// DATA
	s.RegisterRouteFunc(http.MethodGet, RouteAPIIssues, ChainMiddleware(s.ListIssuesHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc(http.MethodPost, RouteAPIIssues, ChainMiddleware(s.CreateIssueHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc(http.MethodGet, RouteAPIIssue, ChainMiddleware(s.GetIssueHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc(http.MethodPatch, RouteAPIIssue, ChainMiddleware(s.UpdateIssueHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc(http.MethodPost, RouteAPIInvite, ChainMiddleware(s.InviteHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc(http.MethodGet, RouteAPIRequests, ChainMiddleware(s.ListRequestsHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc(http.MethodPost, RouteAPIAnswer, ChainMiddleware(s.AnswerRequestHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc(http.MethodPost, RouteAPIImage, ChainMiddleware(s.UploadImageHandler(), s.APIMiddleware()...))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "404 - Page Not Found")
	})
}

func (s *Server) RegisterRouteFunc(method, pattern string, handler http.HandlerFunc) {
	s.router.Method(method, pattern, handler)
}
