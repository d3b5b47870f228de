package files

import (
	"context"
	"fmt"
	"io"

	"github.com/jrsteele09/tracker-web/api"
)

const (
	imagePath  = "file/image"
	imageField = "file"
)

type Repo interface {
	// UploadImage stores an image and returns its public URL.
	UploadImage(ctx context.Context, filename string, image io.Reader) (string, error)
}

type apiRepo struct {
	client *api.Client
}

var _ Repo = (*apiRepo)(nil)

func NewAPIRepo(client *api.Client) Repo {
	return &apiRepo{client: client}
}

func (r *apiRepo) UploadImage(ctx context.Context, filename string, image io.Reader) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := r.client.Upload(ctx, imagePath, imageField, filename, image, &out); err != nil {
		return "", fmt.Errorf("[files UploadImage] %s: %w", filename, err)
	}
	return out.URL, nil
}
