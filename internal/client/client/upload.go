package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Uploader PUTs an object to a presigned URL.
type Uploader interface {
	Upload(ctx context.Context, url, contentType string, data []byte) error
}

type HTTPUploader struct {
	client *http.Client
}

func NewHTTPUploader() *HTTPUploader {
	return &HTTPUploader{client: &http.Client{Timeout: 60 * time.Second}}
}

// Upload sends data with the content type the URL was signed for.
func (u *HTTPUploader) Upload(ctx context.Context, url, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s; body: %s", ErrUploadFailed, resp.Status, string(b))
	}
	return nil
}
