package registry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultProductURL is the registry endpoint; %s receives the path-escaped
// product identifier.
const DefaultProductURL = "http://products.z-wavealliance.org/Products/%s/JSON"

// ErrInvalidIdentifier is returned for every failed lookup: empty identifier,
// transport failure, non-2xx status, or an undecodable body.
var ErrInvalidIdentifier = errors.New("registry: invalid product identifier")

// Fetcher resolves a registry identifier into a product Record.
// Implementations live under internal/registry.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (Record, error)
}

// FetcherOptions configures the HTTP fetcher.
type FetcherOptions struct {
	// ProductURL is a fmt pattern with a single %s for the identifier.
	ProductURL string

	// HTTPClient overrides the client used for lookups.
	HTTPClient *http.Client

	// RequestTimeout caps each lookup when positive.
	RequestTimeout time.Duration

	Logger *zap.Logger
}

// FetcherOption mutates FetcherOptions prior to construction.
type FetcherOption func(*FetcherOptions)

// WithProductURL overrides the registry URL pattern.
func WithProductURL(pattern string) FetcherOption {
	return func(opts *FetcherOptions) {
		opts.ProductURL = pattern
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(opts *FetcherOptions) {
		opts.HTTPClient = client
	}
}

// WithRequestTimeout caps lookup durations.
func WithRequestTimeout(timeout time.Duration) FetcherOption {
	return func(opts *FetcherOptions) {
		opts.RequestTimeout = timeout
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *zap.Logger) FetcherOption {
	return func(opts *FetcherOptions) {
		opts.Logger = logger
	}
}

// NewFetcherOptions applies options over the defaults.
func NewFetcherOptions(options ...FetcherOption) FetcherOptions {
	cfg := FetcherOptions{ProductURL: DefaultProductURL}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.ProductURL == "" {
		cfg.ProductURL = DefaultProductURL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}

// Construction helpers live in the top-level zwavegen package to prevent import cycles.
