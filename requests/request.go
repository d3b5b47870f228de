package requests

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/tracker-web/api"
	"github.com/jrsteele09/tracker-web/internal/errors"
)

// Request is a pending invitation to join a workspace.
type Request struct {
	ID            int       `json:"id"`
	WorkspaceID   int       `json:"workspaceId"`
	WorkspaceName string    `json:"workspaceName"`
	InvitedBy     string    `json:"invitedBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Invite struct {
	Username string `json:"username"`
}

type Answer struct {
	Answer      bool `json:"answer"`
	WorkspaceID int  `json:"workspaceId"`
}

type Repo interface {
	List(ctx context.Context) ([]Request, error)
	Invite(ctx context.Context, slug, username string) error
	Answer(ctx context.Context, answer bool, workspaceID int) error
}

type apiRepo struct {
	client *api.Client
}

var _ Repo = (*apiRepo)(nil)

func NewAPIRepo(client *api.Client) Repo {
	return &apiRepo{client: client}
}

func (r *apiRepo) List(ctx context.Context) ([]Request, error) {
	var list []Request
	if err := r.client.Get(ctx, "request", &list); err != nil {
		return nil, fmt.Errorf("[requests List] %w", err)
	}
	if list == nil {
		list = []Request{}
	}
	return list, nil
}

func (r *apiRepo) Invite(ctx context.Context, slug, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "[requests Invite] username is required")
	}
	if err := r.client.Post(ctx, "request/"+url.PathEscape(slug), Invite{Username: username}, nil); err != nil {
		return fmt.Errorf("[requests Invite] %s: %w", slug, err)
	}
	return nil
}

func (r *apiRepo) Answer(ctx context.Context, answer bool, workspaceID int) error {
	if workspaceID <= 0 {
		return errors.Wrapf(errors.ErrInvalidRequest, "[requests Answer] workspaceId is required")
	}
	if err := r.client.Post(ctx, "request", Answer{Answer: answer, WorkspaceID: workspaceID}, nil); err != nil {
		return fmt.Errorf("[requests Answer] %d: %w", workspaceID, err)
	}
	return nil
}
