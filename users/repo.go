package users

import (
	"context"
	"fmt"

	"github.com/jrsteele09/tracker-web/api"
)

type Repo interface {
	Current(ctx context.Context) (*User, error)
}

type apiRepo struct {
	client *api.Client
}

var _ Repo = (*apiRepo)(nil)

func NewAPIRepo(client *api.Client) Repo {
	return &apiRepo{client: client}
}

func (r *apiRepo) Current(ctx context.Context) (*User, error) {
	var user User
	if err := r.client.Get(ctx, "user", &user); err != nil {
		return nil, fmt.Errorf("[users Current] %w", err)
	}
	return &user, nil
}
