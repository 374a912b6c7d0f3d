// Package zwavegen fills a Homey driver manifest from the Z-Wave Alliance
// product registry. The top-level package wires the pkg/ contracts to their
// internal implementations.
package zwavegen

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-zwavegen/pkg/assets"
	"github.com/goliatone/go-zwavegen/pkg/config"
	"github.com/goliatone/go-zwavegen/pkg/manifest"
	"github.com/goliatone/go-zwavegen/pkg/orchestrator"
	"github.com/goliatone/go-zwavegen/pkg/registry"
)

// Fragment aliases manifest.Fragment for callers that only need the output.
type Fragment = manifest.Fragment

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// BuildManifest converts an already decoded record using the default builder.
func BuildManifest(record registry.Record, options ...manifest.BuilderOption) Fragment {
	return manifest.NewBuilder(options...).Build(record)
}

// FetchManifest looks up id in the registry and builds its fragment without
// prompting or touching the filesystem.
func FetchManifest(ctx context.Context, id string, options ...orchestrator.Option) (Fragment, error) {
	result, err := orchestrator.New(options...).Inspect(ctx, id)
	if err != nil {
		return Fragment{}, err
	}
	return result.Fragment, nil
}

// OptionsFromConfig translates a loaded configuration into orchestrator
// options. logger may be nil.
func OptionsFromConfig(cfg config.Config, logger *zap.Logger) ([]orchestrator.Option, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}

	builderOptions := []manifest.BuilderOption{
		manifest.WithLocale(cfg.Manifest.Locale),
		manifest.WithGroupNumberBase(cfg.Manifest.GroupNumberBase),
	}
	if cfg.Manifest.StripHTML {
		builderOptions = append(builderOptions, manifest.WithHTMLStripping())
	}

	return []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithFetcher(NewFetcher(
			registry.WithProductURL(cfg.Registry.ProductURL),
			registry.WithRequestTimeout(timeout),
			registry.WithLogger(logger.Named("registry")),
		)),
		orchestrator.WithImageFetcher(NewImageFetcher(
			assets.WithRequestTimeout(timeout),
		)),
		orchestrator.WithImageURLPattern(cfg.Registry.ImageURL),
		orchestrator.WithImagePath(cfg.Assets.ImagePath),
		orchestrator.WithBuilder(manifest.NewBuilder(builderOptions...)),
	}, nil
}
