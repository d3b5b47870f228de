package workspaces

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jrsteele09/tracker-web/api"
)

type Repo interface {
	List(ctx context.Context) ([]Workspace, error)
	Get(ctx context.Context, slug string) (*Workspace, error)
}

type apiRepo struct {
	client *api.Client
}

var _ Repo = (*apiRepo)(nil)

func NewAPIRepo(client *api.Client) Repo {
	return &apiRepo{client: client}
}

func (r *apiRepo) List(ctx context.Context) ([]Workspace, error) {
	var list []Workspace
	if err := r.client.Get(ctx, "workspace", &list); err != nil {
		return nil, fmt.Errorf("[workspaces List] %w", err)
	}
	if list == nil {
		list = []Workspace{}
	}
	return list, nil
}

func (r *apiRepo) Get(ctx context.Context, slug string) (*Workspace, error) {
	var ws Workspace
	if err := r.client.Get(ctx, "workspace/"+url.PathEscape(slug), &ws); err != nil {
		return nil, fmt.Errorf("[workspaces Get] %s: %w", slug, err)
	}
	return &ws, nil
}
