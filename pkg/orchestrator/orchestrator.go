package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	internalassets "github.com/goliatone/go-zwavegen/internal/assets"
	internalregistry "github.com/goliatone/go-zwavegen/internal/registry"
	"github.com/goliatone/go-zwavegen/pkg/assets"
	"github.com/goliatone/go-zwavegen/pkg/driver"
	"github.com/goliatone/go-zwavegen/pkg/manifest"
	"github.com/goliatone/go-zwavegen/pkg/prompt"
	"github.com/goliatone/go-zwavegen/pkg/registry"
	"github.com/goliatone/go-zwavegen/pkg/validation"
)

const (
	registryHomeURL = "https://products.z-wavealliance.org/"

	hasIDMessage = "Do you have a Z-Wave Alliance ID? This ID is four digits, found in the URL at " + registryHomeURL
	idMessage    = "What is the Z-Wave Alliance ID?"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithFetcher injects a custom registry fetcher.
func WithFetcher(fetcher registry.Fetcher) Option {
	return func(o *Orchestrator) {
		o.fetcher = fetcher
	}
}

// WithImageFetcher injects a custom image downloader.
func WithImageFetcher(fetcher assets.Fetcher) Option {
	return func(o *Orchestrator) {
		o.images = fetcher
	}
}

// WithBuilder injects a custom manifest builder.
func WithBuilder(builder manifest.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithPromptDriver overrides the prompt driver used by Autocomplete.
func WithPromptDriver(driver prompt.Driver) Option {
	return func(o *Orchestrator) {
		o.prompts = driver
	}
}

// WithTransformer registers a Transformer that runs after the fragment is
// built and before it is merged.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithImageURLPattern overrides the certification-number image URL pattern.
func WithImageURLPattern(pattern string) Option {
	return func(o *Orchestrator) {
		o.imageURLPattern = pattern
	}
}

// WithImagePath sets where the image is written, relative to the driver
// directory.
func WithImagePath(path string) Option {
	return func(o *Orchestrator) {
		o.imagePath = path
	}
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates prompt -> registry fetch -> image download and
// manifest build -> driver merge. Missing dependencies are initialised with
// the built-in implementations.
type Orchestrator struct {
	fetcher         registry.Fetcher
	images          assets.Fetcher
	builder         manifest.Builder
	prompts         prompt.Driver
	transformer     Transformer
	imageURLPattern string
	imagePath       string
	logger          *zap.Logger
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one autocomplete run.
type Request struct {
	// DriverDir is the driver directory; the image is written beneath it.
	// When empty the image download is skipped.
	DriverDir string

	// Driver receives the fragment. When nil the fragment is only returned.
	Driver driver.Config

	// RegistryID skips the prompts when set.
	RegistryID string
}

// Result reports what a run produced.
type Result struct {
	// Skipped is true when the user declined or gave no identifier.
	Skipped bool

	RegistryID string
	Fragment   manifest.Fragment
	Report     manifest.Report
	// Issues lists advisory lint findings for Fragment.
	Issues []validation.Issue

	ImageURL  string
	ImagePath string
	// ImageErr holds the non-fatal image failure, if any.
	ImageErr error
}

// Autocomplete asks for a registry identifier, fetches the product, and
// merges the derived fragment into req.Driver. Declining a prompt returns a
// Skipped result and no error. Only the registry lookup can fail the run.
func (o *Orchestrator) Autocomplete(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	id := strings.TrimSpace(req.RegistryID)
	if id == "" {
		asked, proceed, err := o.askIdentifier(ctx)
		if err != nil {
			return Result{}, err
		}
		if !proceed {
			o.logger.Info("registry lookup skipped")
			return Result{Skipped: true}, nil
		}
		id = asked
	}

	record, err := o.fetch(ctx, id)
	if err != nil {
		return Result{}, err
	}

	result := Result{RegistryID: id}

	group, groupCtx := errgroup.WithContext(ctx)
	if req.DriverDir != "" {
		result.ImageURL = assets.ImageURL(record, o.imageURLPattern)
		if result.ImageURL != "" {
			dest := filepath.Join(req.DriverDir, o.imagePath)
			group.Go(func() error {
				result.ImageErr = o.downloadImage(groupCtx, result.ImageURL, dest)
				if result.ImageErr == nil {
					result.ImagePath = dest
				}
				return nil
			})
		}
	}

	fragment, report, buildErr := o.build(ctx, record)
	_ = group.Wait()
	if buildErr != nil {
		return Result{}, buildErr
	}
	result.Fragment = fragment
	result.Report = report
	result.Issues = o.lint(fragment)

	if req.Driver != nil {
		if err := req.Driver.Merge(fragment); err != nil {
			return Result{}, fmt.Errorf("orchestrator: merge driver: %w", err)
		}
	}

	o.logger.Info("driver manifest updated",
		zap.String("registry_id", id),
		zap.Int("settings", len(fragment.Settings)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Bool("image", result.ImagePath != ""),
	)
	return result, nil
}

// Inspect fetches and builds without prompting, downloading, or merging.
func (o *Orchestrator) Inspect(ctx context.Context, id string) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	id = strings.TrimSpace(id)
	record, err := o.fetch(ctx, id)
	if err != nil {
		return Result{}, err
	}
	fragment, report, err := o.build(ctx, record)
	if err != nil {
		return Result{}, err
	}
	return Result{
		RegistryID: id,
		Fragment:   fragment,
		Report:     report,
		Issues:     o.lint(fragment),
		ImageURL:   assets.ImageURL(record, o.imageURLPattern),
	}, nil
}

func (o *Orchestrator) askIdentifier(ctx context.Context) (string, bool, error) {
	hasID, err := o.prompts.Confirm(ctx, prompt.ConfirmConfig{Message: hasIDMessage})
	if errors.Is(err, prompt.ErrAborted) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("orchestrator: prompt: %w", err)
	}
	if !hasID {
		return "", false, nil
	}

	id, err := o.prompts.Input(ctx, prompt.InputConfig{
		Message:   idMessage,
		Validator: validation.RegistryID,
	})
	if errors.Is(err, prompt.ErrAborted) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("orchestrator: prompt: %w", err)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false, nil
	}
	return id, true, nil
}

func (o *Orchestrator) fetch(ctx context.Context, id string) (registry.Record, error) {
	o.logger.Debug("fetching registry record", zap.String("registry_id", id))
	record, err := o.fetcher.Fetch(ctx, id)
	if err != nil {
		o.logger.Error("registry lookup failed", zap.String("registry_id", id), zap.Error(err))
		return registry.Record{}, fmt.Errorf("orchestrator: %w", err)
	}
	return record, nil
}

func (o *Orchestrator) build(ctx context.Context, record registry.Record) (manifest.Fragment, manifest.Report, error) {
	fragment, report := o.builder.BuildWithReport(record)
	for _, skipped := range report.Skipped {
		o.logger.Warn("configuration parameter skipped",
			zap.Int("position", skipped.Position),
			zap.String("parameter", skipped.ParameterNumber),
			zap.Error(skipped.Err),
		)
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &fragment); err != nil {
			return manifest.Fragment{}, manifest.Report{}, fmt.Errorf("orchestrator: transform fragment: %w", err)
		}
	}
	return fragment, report, nil
}

func (o *Orchestrator) lint(fragment manifest.Fragment) []validation.Issue {
	result := validation.ValidateFragment(fragment)
	for _, issue := range result.Issues {
		o.logger.Warn("manifest lint", zap.String("field", issue.Field), zap.String("issue", issue.Message))
	}
	return result.Issues
}

func (o *Orchestrator) downloadImage(ctx context.Context, url, dest string) error {
	o.logger.Debug("downloading product image", zap.String("url", url), zap.String("dest", dest))
	if err := o.images.Fetch(ctx, url, dest); err != nil {
		o.logger.Warn("product image not saved", zap.String("url", url), zap.Error(err))
		return err
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.fetcher == nil {
		o.fetcher = internalregistry.New(registry.NewFetcherOptions(registry.WithLogger(o.logger)))
	}
	if o.images == nil {
		o.images = internalassets.New(assets.NewFetcherOptions())
	}
	if o.builder == nil {
		o.builder = manifest.NewBuilder()
	}
	if o.prompts == nil {
		o.prompts = prompt.NewSurveyDriver()
	}
	if o.imagePath == "" {
		o.imagePath = assets.DefaultImagePath
	}
}
