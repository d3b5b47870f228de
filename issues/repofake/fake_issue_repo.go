package fakeissuerepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jrsteele09/tracker-web/internal/errors"
	"github.com/jrsteele09/tracker-web/issues"
)

var _ issues.Repo = (*FakeIssueRepo)(nil)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type FakeIssueRepo struct {
	lists  map[string]issues.List
	nextID int
	err    error
	lock   sync.RWMutex
}

func NewFakeIssueRepo() *FakeIssueRepo {
	return &FakeIssueRepo{
		lists:  make(map[string]issues.List),
		nextID: 1,
	}
}

// Seed replaces the issues of a workspace.
func (r *FakeIssueRepo) Seed(slug string, list ...issues.Issue) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.lists[slug] = issues.NewList(list)
	for _, i := range list {
		if i.ID >= r.nextID {
			r.nextID = i.ID + 1
		}
	}
}

// Fail makes every call return err.
func (r *FakeIssueRepo) Fail(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.err = err
}

func (r *FakeIssueRepo) List(_ context.Context, slug string) ([]issues.Issue, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.lists[slug].Items(), nil
}

func (r *FakeIssueRepo) Get(_ context.Context, slug string, id int) (*issues.Issue, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, i := range r.lists[slug].Items() {
		if i.ID == id {
			return &i, nil
		}
	}
	return nil, errors.ErrNotFound
}

func (r *FakeIssueRepo) Create(_ context.Context, slug string, create issues.CreateIssue) (*issues.Issue, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if err := create.Validate(); err != nil {
		return nil, err
	}

	issue := issues.Issue{
		ID:        r.nextID,
		CustomID:  fmt.Sprintf("%s-%d", slug, r.nextID),
		Title:     create.Title,
		Status:    create.Status,
		Priority:  create.Priority,
		Version:   1,
		CreatedAt: NowTimeFunc(),
	}
	if create.Description != "" {
		d := create.Description
		issue.Description = &d
	}
	if create.DueDate != nil {
		issue.DueDate = *create.DueDate
	}
	r.nextID++
	r.lists[slug] = r.lists[slug].Prepend(issue)
	return &issue, nil
}

func (r *FakeIssueRepo) Update(_ context.Context, slug string, id int, update issues.UpdateIssue) (*issues.Issue, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	for _, i := range r.lists[slug].Items() {
		if i.ID != id {
			continue
		}
		i.Title = update.Title
		i.Description = update.Description
		i.Status = update.Status
		i.Priority = update.Priority
		if update.DueDate != nil {
			due, _ := time.Parse(time.RFC3339Nano, *update.DueDate)
			i.DueDate = due
		}
		i.Version++
		r.lists[slug] = r.lists[slug].Replace(i)
		return &i, nil
	}
	return nil, errors.ErrNotFound
}
