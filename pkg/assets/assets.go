// Package assets downloads the product image that accompanies a driver. Image
// failures are never fatal to a scaffolding run; callers log ErrAssetFetch and
// carry on.
package assets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-zwavegen/pkg/registry"
)

// DefaultImageURL is the registry's image endpoint keyed by certification
// number; %s receives the query-escaped number.
const DefaultImageURL = "https://products.z-wavealliance.org/ProductImages/Index?productName=%s"

// DefaultImagePath is where the image lands, relative to the driver directory.
var DefaultImagePath = filepath.Join("assets", "images", "original.jpeg")

// ErrAssetFetch wraps every download or write failure.
var ErrAssetFetch = errors.New("assets: image fetch failed")

// Fetcher downloads url into the file at dest.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// ImageURL picks the image to download for record: the record's own Image
// when set, otherwise pattern filled with the certification number. It
// returns "" when neither is available.
func ImageURL(record registry.Record, pattern string) string {
	if image := strings.TrimSpace(record.Image.Text()); image != "" {
		return image
	}
	cert := strings.TrimSpace(record.CertificationNumber.Text())
	if cert == "" {
		return ""
	}
	if pattern == "" {
		pattern = DefaultImageURL
	}
	return fmt.Sprintf(pattern, url.QueryEscape(cert))
}

// FetcherOptions configures the HTTP downloader.
type FetcherOptions struct {
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	// MaxBytes caps the downloaded size when positive.
	MaxBytes int64
}

// FetcherOption mutates FetcherOptions prior to construction.
type FetcherOption func(*FetcherOptions)

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(opts *FetcherOptions) {
		opts.HTTPClient = client
	}
}

// WithRequestTimeout caps download durations.
func WithRequestTimeout(timeout time.Duration) FetcherOption {
	return func(opts *FetcherOptions) {
		opts.RequestTimeout = timeout
	}
}

// WithMaxBytes caps the image size.
func WithMaxBytes(n int64) FetcherOption {
	return func(opts *FetcherOptions) {
		opts.MaxBytes = n
	}
}

// NewFetcherOptions applies options over the defaults.
func NewFetcherOptions(options ...FetcherOption) FetcherOptions {
	cfg := FetcherOptions{MaxBytes: 16 << 20}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
