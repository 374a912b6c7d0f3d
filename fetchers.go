package zwavegen

import (
	internalassets "github.com/goliatone/go-zwavegen/internal/assets"
	internalregistry "github.com/goliatone/go-zwavegen/internal/registry"
	"github.com/goliatone/go-zwavegen/pkg/assets"
	"github.com/goliatone/go-zwavegen/pkg/registry"
)

// NewFetcher constructs a registry fetcher using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewFetcher(options ...registry.FetcherOption) registry.Fetcher {
	cfg := registry.NewFetcherOptions(options...)
	return internalregistry.New(cfg)
}

// NewImageFetcher constructs an image downloader backed by the internal
// implementation.
func NewImageFetcher(options ...assets.FetcherOption) assets.Fetcher {
	cfg := assets.NewFetcherOptions(options...)
	return internalassets.New(cfg)
}
