package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	pkgassets "github.com/goliatone/go-zwavegen/pkg/assets"
)

// Downloader implements pkgassets.Fetcher over HTTP.
type Downloader struct {
	http     *http.Client
	timeout  time.Duration
	maxBytes int64
}

var _ pkgassets.Fetcher = (*Downloader)(nil)

// New constructs a Downloader from pre-resolved options.
func New(options pkgassets.FetcherOptions) *Downloader {
	client := options.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &Downloader{
		http:     client,
		timeout:  options.RequestTimeout,
		maxBytes: options.MaxBytes,
	}
}

// Fetch downloads url and writes it to dest. The file is only replaced once
// the full body has been received; every failure wraps ErrAssetFetch.
func (d *Downloader) Fetch(ctx context.Context, url, dest string) error {
	if url == "" {
		return fmt.Errorf("%w: url is required", pkgassets.ErrAssetFetch)
	}
	if dest == "" {
		return fmt.Errorf("%w: destination is required", pkgassets.ErrAssetFetch)
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if d.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", pkgassets.ErrAssetFetch, err)
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", pkgassets.ErrAssetFetch, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %s", pkgassets.ErrAssetFetch, resp.Status)
	}

	if err := writeFile(dest, resp.Body, d.maxBytes); err != nil {
		return fmt.Errorf("%w: %v", pkgassets.ErrAssetFetch, err)
	}
	return nil
}

// writeFile copies body into dest through a temp file. When maxBytes is
// positive a longer body fails the write and leaves dest untouched.
func writeFile(dest string, body io.Reader, maxBytes int64) (err error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".image-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if maxBytes > 0 {
		body = io.LimitReader(body, maxBytes+1)
	}
	written, err := io.Copy(tmp, body)
	if err != nil {
		_ = tmp.Close()
		return err
	}
	if maxBytes > 0 && written > maxBytes {
		_ = tmp.Close()
		err = fmt.Errorf("image exceeds %d bytes", maxBytes)
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("rename image: %w", err)
	}
	return nil
}
