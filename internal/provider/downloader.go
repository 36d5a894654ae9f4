package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Downloader fetches the raw bytes behind a logo URL.
type Downloader struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// NewDownloader creates a Downloader. Bodies larger than maxBytes fail the
// download.
func NewDownloader(timeout time.Duration, userAgent string, maxBytes int64) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

// Download performs a single GET. Any non-2xx status is an error.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if int64(len(data)) > d.maxBytes {
		return nil, fmt.Errorf("download failed: body exceeds %d bytes", d.maxBytes)
	}
	return data, nil
}
