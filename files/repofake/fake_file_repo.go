package fakefilerepo

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/tracker-web/files"
)

var _ files.Repo = (*FakeFileRepo)(nil)

type FakeFileRepo struct {
	BaseURL string
	Stored  map[string][]byte // url -> content
	err     error
	lock    sync.Mutex
}

func NewFakeFileRepo(baseURL string) *FakeFileRepo {
	return &FakeFileRepo{BaseURL: baseURL, Stored: make(map[string][]byte)}
}

// Fail makes every call return err.
func (r *FakeFileRepo) Fail(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.err = err
}

func (r *FakeFileRepo) UploadImage(_ context.Context, filename string, image io.Reader) (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.err != nil {
		return "", r.err
	}
	data, err := io.ReadAll(image)
	if err != nil {
		return "", err
	}
	url := r.BaseURL + "/" + uuid.NewString() + "-" + filename
	r.Stored[url] = data
	return url, nil
}
