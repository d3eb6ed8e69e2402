package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound signals a 404 answer for the requested archive.
var ErrNotFound = errors.New("archive not found")

// GetArchive downloads the archive at url and returns its bytes.
func (c *ArchiveClient) GetArchive(url string) ([]byte, error) {
	resp, err := c.HTTP.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download archive: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to download archive from %s, status: %s", url, resp.Status())
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, errors.New("response body is empty")
	}
	if c.Config.MaxSize > 0 && int64(len(body)) > c.Config.MaxSize {
		return nil, fmt.Errorf("archive is %d bytes, greater than the max download size of %d bytes", len(body), c.Config.MaxSize)
	}

	return body, nil
}
