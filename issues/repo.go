package issues

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jrsteele09/tracker-web/api"
)

type Repo interface {
	List(ctx context.Context, slug string) ([]Issue, error)
	Get(ctx context.Context, slug string, id int) (*Issue, error)
	Create(ctx context.Context, slug string, issue CreateIssue) (*Issue, error)
	Update(ctx context.Context, slug string, id int, update UpdateIssue) (*Issue, error)
}

type apiRepo struct {
	client *api.Client
}

var _ Repo = (*apiRepo)(nil)

func NewAPIRepo(client *api.Client) Repo {
	return &apiRepo{client: client}
}

func workspacePath(slug string) string {
	return "issue/" + url.PathEscape(slug)
}

func issuePath(slug string, id int) string {
	return workspacePath(slug) + "/" + strconv.Itoa(id)
}

func (r *apiRepo) List(ctx context.Context, slug string) ([]Issue, error) {
	var list []Issue
	if err := r.client.Get(ctx, workspacePath(slug), &list); err != nil {
		return nil, fmt.Errorf("[issues List] %s: %w", slug, err)
	}
	if list == nil {
		list = []Issue{}
	}
	return list, nil
}

func (r *apiRepo) Get(ctx context.Context, slug string, id int) (*Issue, error) {
	var issue Issue
	if err := r.client.Get(ctx, issuePath(slug, id), &issue); err != nil {
		return nil, fmt.Errorf("[issues Get] %s/%d: %w", slug, id, err)
	}
	return &issue, nil
}

func (r *apiRepo) Create(ctx context.Context, slug string, create CreateIssue) (*Issue, error) {
	if err := create.Validate(); err != nil {
		return nil, fmt.Errorf("[issues Create] %w", err)
	}
	var issue Issue
	if err := r.client.Post(ctx, workspacePath(slug), create, &issue); err != nil {
		return nil, fmt.Errorf("[issues Create] %s: %w", slug, err)
	}
	return &issue, nil
}

func (r *apiRepo) Update(ctx context.Context, slug string, id int, update UpdateIssue) (*Issue, error) {
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("[issues Update] %w", err)
	}
	var issue Issue
	if err := r.client.Patch(ctx, issuePath(slug, id), update, &issue); err != nil {
		return nil, fmt.Errorf("[issues Update] %s/%d: %w", slug, id, err)
	}
	return &issue, nil
}
