package server

import "net/url"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteSignIn       = "/sign-in"
	RouteSignOut      = "/sign-out"
	RouteAuthCallback = "/auth/callback"

	// Page Routes
	RouteIndex         = "/"
	RouteNotFound      = "/404"
	RouteWorkspace     = "/workspace/{slug}"
	RouteWorkspaceHome = "/workspace/{slug}/home"

	// Data Routes
	RouteAPIIssues   = "/api/workspace/{slug}/issues"
	RouteAPIIssue    = "/api/workspace/{slug}/issues/{id}"
	RouteAPIInvite   = "/api/workspace/{slug}/invite"
	RouteAPIRequests = "/api/requests"
	RouteAPIAnswer   = "/api/requests/answer"
	RouteAPIImage    = "/api/files/image"

	// Operational Routes
	RouteHealth = "/healthz"
)

// workspacePath builds the page URL for a workspace slug.
func workspacePath(slug string) string {
	return "/workspace/" + url.PathEscape(slug)
}
