package manifest

import (
	internalmanifest "github.com/goliatone/go-zwavegen/internal/manifest"
	"github.com/goliatone/go-zwavegen/pkg/registry"
)

// Builder converts registry records into manifest fragments.
type Builder interface {
	Build(record registry.Record) Fragment
	BuildWithReport(record registry.Record) (Fragment, Report)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	locale    string
	groupBase int
	sanitizer func(string) string
}

// WithLocale sets the locale key used for labels, hints, and instructions.
func WithLocale(locale string) BuilderOption {
	return func(opts *builderOptions) {
		opts.locale = locale
	}
}

// WithGroupNumberBase overrides the base used to parse association group
// numbers. The registry documents them as decimal; base 2 reproduces the
// output of older scaffolding tools.
func WithGroupNumberBase(base int) BuilderOption {
	return func(opts *builderOptions) {
		opts.groupBase = base
	}
}

// WithTextSanitizer rewrites free text before it is stored.
func WithTextSanitizer(fn func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.sanitizer = fn
	}
}

// WithHTMLStripping is WithTextSanitizer(StripHTML).
func WithHTMLStripping() BuilderOption {
	return WithTextSanitizer(StripHTML)
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return internalmanifest.New(internalmanifest.Options{
		Locale:          cfg.locale,
		GroupNumberBase: cfg.groupBase,
		Sanitizer:       cfg.sanitizer,
	})
}
