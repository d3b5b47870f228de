package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Upload posts a single file as multipart/form-data under field and decodes
// the JSON answer into out.
func (c *Client) Upload(ctx context.Context, path, field, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("[api Upload] create part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("[api Upload] copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("[api Upload] close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("[api Upload] %s: %w", path, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", contentTypeJSON)
	return c.send(req, out)
}
