package server

import (
	"github.com/jrsteele09/tracker-web/api"
	"github.com/jrsteele09/tracker-web/files"
	"github.com/jrsteele09/tracker-web/issues"
	"github.com/jrsteele09/tracker-web/requests"
	"github.com/jrsteele09/tracker-web/users"
	"github.com/jrsteele09/tracker-web/workspaces"
)

// Accessors are the backend resources available to one signed-in user.
type Accessors struct {
	Users      users.Repo
	Workspaces workspaces.Repo
	Issues     issues.Repo
	Requests   requests.Repo
	Files      files.Repo
}

// AccessorFactory binds the resource accessors to a bearer token.
type AccessorFactory func(accessToken string) Accessors

// APIAccessors builds accessors that share one authenticated client per token.
func APIAccessors(factory *api.Factory) AccessorFactory {
	return func(accessToken string) Accessors {
		client := factory.Build(accessToken)
		return Accessors{
			Users:      users.NewAPIRepo(client),
			Workspaces: workspaces.NewAPIRepo(client),
			Issues:     issues.NewAPIRepo(client),
			Requests:   requests.NewAPIRepo(client),
			Files:      files.NewAPIRepo(client),
		}
	}
}
