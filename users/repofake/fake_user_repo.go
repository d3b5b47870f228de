package fakeuserrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/tracker-web/internal/errors"
	"github.com/jrsteele09/tracker-web/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	user *users.User
	err  error
	lock sync.RWMutex
}

func NewFakeUserRepo(user *users.User) *FakeUserRepo {
	return &FakeUserRepo{user: user}
}

// Fail makes every call return err.
func (r *FakeUserRepo) Fail(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.err = err
}

func (r *FakeUserRepo) Current(_ context.Context) (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.user == nil {
		return nil, errors.ErrNotFound
	}
	u := *r.user
	return &u, nil
}
