package fakeworkspacerepo

import (
	"context"
	"sort"
	"sync"

	"github.com/jrsteele09/tracker-web/internal/errors"
	"github.com/jrsteele09/tracker-web/workspaces"
)

var _ workspaces.Repo = (*FakeWorkspaceRepo)(nil)

type FakeWorkspaceRepo struct {
	workspaces map[string]workspaces.Workspace
	err        error
	lock       sync.RWMutex
}

func NewFakeWorkspaceRepo(list ...workspaces.Workspace) *FakeWorkspaceRepo {
	r := &FakeWorkspaceRepo{workspaces: make(map[string]workspaces.Workspace)}
	for _, ws := range list {
		r.workspaces[ws.Slug] = ws
	}
	return r
}

// Fail makes every call return err.
func (r *FakeWorkspaceRepo) Fail(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.err = err
}

func (r *FakeWorkspaceRepo) List(_ context.Context) ([]workspaces.Workspace, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.err != nil {
		return nil, r.err
	}

	list := make([]workspaces.Workspace, 0, len(r.workspaces))
	for _, ws := range r.workspaces {
		list = append(list, ws)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *FakeWorkspaceRepo) Get(_ context.Context, slug string) (*workspaces.Workspace, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	ws, ok := r.workspaces[slug]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return &ws, nil
}
