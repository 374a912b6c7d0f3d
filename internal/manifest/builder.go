package manifest

import (
	"errors"
	"strings"

	"github.com/goliatone/go-zwavegen/pkg/registry"
)

// ErrMalformedParameter marks a configuration parameter that could not be
// turned into a setting. It never aborts a build; see Report.
var ErrMalformedParameter = errors.New("manifest: malformed configuration parameter")

// SkippedParameter describes a parameter left out of the settings list.
type SkippedParameter struct {
	// Position is the index of the parameter in the source record.
	Position int
	// ParameterNumber is the raw parameter number token, if any.
	ParameterNumber string
	Err             error
}

// Report lists what a build dropped.
type Report struct {
	Skipped []SkippedParameter
}

// Builder converts registry records into manifest fragments. It holds no
// per-build state and is safe for concurrent use.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if strings.TrimSpace(options.Locale) != "" {
		opts.Locale = strings.TrimSpace(options.Locale)
	}
	if options.GroupNumberBase >= 2 && options.GroupNumberBase <= 36 {
		opts.GroupNumberBase = options.GroupNumberBase
	}
	opts.Sanitizer = options.Sanitizer
	return &Builder{opts: opts}
}

// Build assembles the fragment for record, dropping unusable parameters and
// association groups silently.
func (b *Builder) Build(record registry.Record) Fragment {
	fragment, _ := b.BuildWithReport(record)
	return fragment
}

// BuildWithReport is Build plus the list of skipped parameters.
func (b *Builder) BuildWithReport(record registry.Record) (Fragment, Report) {
	fragment := Fragment{
		ManufacturerID:    optionalInt(record.ManufacturerID),
		ProductTypeID:     singleInt(record.ProductTypeID),
		ProductID:         singleInt(record.ProductID),
		RegistryProductID: optionalInt(record.ID),
		Documentation:     record.ManualURL.Text(),
	}

	if text := b.localize(record.InclusionDescription.Text()); text != nil {
		fragment.LearnMode = &Instruction{Instruction: text}
	}
	if text := b.localize(record.ExclusionDescription.Text()); text != nil {
		fragment.UnlearnMode = &Instruction{Instruction: text}
	}

	fragment.AssociationGroups, fragment.AssociationGroupsOptions = b.extractGroups(record.AssociationGroups)

	var report Report
	fragment.Settings = make([]Setting, 0, len(record.ConfigurationParameters))
	for i, param := range record.ConfigurationParameters {
		setting, err := b.inferSetting(param)
		if err != nil {
			skipped := SkippedParameter{Position: i, Err: err}
			if param != nil {
				skipped.ParameterNumber = param.ParameterNumber.Text()
			}
			report.Skipped = append(report.Skipped, skipped)
			continue
		}
		fragment.Settings = append(fragment.Settings, setting)
	}

	return fragment, report
}

// localize wraps non-empty text under the configured locale. It returns nil
// for empty input so callers can treat "absent" uniformly.
func (b *Builder) localize(text string) LocalizedText {
	if text == "" {
		return nil
	}
	if b.opts.Sanitizer != nil {
		text = b.opts.Sanitizer(text)
		if text == "" {
			return nil
		}
	}
	return LocalizedText{b.opts.Locale: text}
}

// text is localize for fields that must always carry a translation entry,
// even an empty one.
func (b *Builder) text(text string) LocalizedText {
	if localized := b.localize(text); localized != nil {
		return localized
	}
	return LocalizedText{b.opts.Locale: ""}
}

func optionalInt(v registry.Value) *int64 {
	n, ok := v.Int()
	if !ok {
		return nil
	}
	return &n
}

func singleInt(v registry.Value) []int64 {
	n, ok := v.Int()
	if !ok {
		return nil
	}
	return []int64{n}
}
