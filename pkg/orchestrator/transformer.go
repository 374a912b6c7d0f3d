package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-zwavegen/pkg/manifest"
)

// Transformer mutates a Fragment after it is built. Implementations can
// relabel settings, add translations, or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, fragment *manifest.Fragment) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, fragment *manifest.Fragment) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, fragment *manifest.Fragment) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, fragment)
}

// PresetTransformer applies declarative overrides loaded from a JSON or YAML
// document. Settings are addressed by id; label and hint maps are merged per
// locale:
//
//	settings:
//	  "3":
//	    label: {en: "Report interval (s)", nl: "Rapportage-interval (s)"}
//	    drop: false
//	associationGroups:
//	  "1":
//	    hint: {nl: "Lifeline"}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Settings          map[string]settingPatch `json:"settings" yaml:"settings"`
	AssociationGroups map[string]groupPatch   `json:"associationGroups" yaml:"associationGroups"`
}

type settingPatch struct {
	Label map[string]string `json:"label" yaml:"label"`
	Hint  map[string]string `json:"hint" yaml:"hint"`
	Drop  bool              `json:"drop" yaml:"drop"`
}

type groupPatch struct {
	Hint map[string]string `json:"hint" yaml:"hint"`
}

// NewPresetTransformer constructs a transformer from raw JSON or YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		if yamlErr := yaml.Unmarshal(data, &document); yamlErr != nil {
			return nil, fmt.Errorf("preset transformer: parse document: invalid JSON or YAML: %w", yamlErr)
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the preset to fragment.
func (p *PresetTransformer) Transform(_ context.Context, fragment *manifest.Fragment) error {
	if p == nil || fragment == nil {
		return nil
	}

	if len(p.document.Settings) > 0 {
		kept := fragment.Settings[:0]
		for _, setting := range fragment.Settings {
			patch, ok := p.document.Settings[setting.ID]
			if !ok {
				kept = append(kept, setting)
				continue
			}
			if patch.Drop {
				continue
			}
			setting.Label = mergeText(setting.Label, patch.Label)
			setting.Hint = mergeText(setting.Hint, patch.Hint)
			kept = append(kept, setting)
		}
		fragment.Settings = kept
	}

	if len(p.document.AssociationGroups) > 0 {
		keys := make([]string, 0, len(p.document.AssociationGroups))
		for key := range p.document.AssociationGroups {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			patch := p.document.AssociationGroups[key]
			if len(patch.Hint) == 0 {
				continue
			}
			if fragment.AssociationGroupsOptions == nil {
				fragment.AssociationGroupsOptions = make(map[string]manifest.GroupOptions)
			}
			options := fragment.AssociationGroupsOptions[key]
			options.Hint = mergeText(options.Hint, patch.Hint)
			fragment.AssociationGroupsOptions[key] = options
		}
	}
	return nil
}

func mergeText(base manifest.LocalizedText, updates map[string]string) manifest.LocalizedText {
	if len(updates) == 0 {
		return base
	}
	out := make(manifest.LocalizedText, len(base)+len(updates))
	for locale, text := range base {
		out[locale] = text
	}
	for locale, text := range updates {
		out[locale] = text
	}
	return out
}
