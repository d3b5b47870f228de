package fakerequestrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/tracker-web/internal/errors"
	"github.com/jrsteele09/tracker-web/requests"
)

var _ requests.Repo = (*FakeRequestRepo)(nil)

type FakeRequestRepo struct {
	pending []requests.Request
	Invites map[string][]string // slug -> usernames
	Answers map[int]bool        // workspace id -> answer
	err     error
	lock    sync.RWMutex
}

func NewFakeRequestRepo(pending ...requests.Request) *FakeRequestRepo {
	return &FakeRequestRepo{
		pending: pending,
		Invites: make(map[string][]string),
		Answers: make(map[int]bool),
	}
}

// Fail makes every call return err.
func (r *FakeRequestRepo) Fail(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.err = err
}

func (r *FakeRequestRepo) List(_ context.Context) ([]requests.Request, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	return append([]requests.Request{}, r.pending...), nil
}

func (r *FakeRequestRepo) Invite(_ context.Context, slug, username string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.err != nil {
		return r.err
	}
	if username == "" {
		return errors.ErrInvalidRequest
	}
	r.Invites[slug] = append(r.Invites[slug], username)
	return nil
}

func (r *FakeRequestRepo) Answer(_ context.Context, answer bool, workspaceID int) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.err != nil {
		return r.err
	}
	for i, p := range r.pending {
		if p.WorkspaceID == workspaceID {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			r.Answers[workspaceID] = answer
			return nil
		}
	}
	return errors.ErrNotFound
}
