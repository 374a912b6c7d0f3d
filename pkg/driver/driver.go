// Package driver reads, merges, and writes driver manifests
// (driver.compose.json). The manifest is kept as generic JSON so keys this
// tool does not own survive a round trip.
package driver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-zwavegen/pkg/manifest"
)

// FileName is the manifest file inside a driver directory.
const FileName = "driver.compose.json"

const (
	zwaveKey    = "zwave"
	settingsKey = "settings"
)

// ErrSettingsNotList is returned when an existing "settings" key holds
// something other than a JSON array.
var ErrSettingsNotList = errors.New("driver: settings is not a list")

// Config is an in-memory driver manifest.
type Config map[string]any

// Load reads the manifest at path. A missing file yields an empty Config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("driver: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, nil
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("driver: parse %s: %w", path, err)
	}
	if cfg == nil {
		cfg = Config{}
	}
	return cfg, nil
}

// Save writes cfg to path with two-space indentation.
func Save(path string, cfg Config) error {
	payload, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("driver: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("driver: mkdir: %w", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("driver: write %s: %w", path, err)
	}
	return nil
}

// Merge replaces the zwave section with fragment and appends its settings to
// the existing top-level settings list. Existing settings are never
// deduplicated.
func (c Config) Merge(fragment manifest.Fragment) error {
	existing, ok := c[settingsKey]
	var settings []any
	if ok && existing != nil {
		list, isList := existing.([]any)
		if !isList {
			return ErrSettingsNotList
		}
		settings = list
	}

	zwave, err := toGeneric(fragment)
	if err != nil {
		return err
	}
	for _, setting := range fragment.Settings {
		generic, err := toGeneric(setting)
		if err != nil {
			return err
		}
		settings = append(settings, generic)
	}

	c[zwaveKey] = zwave
	if settings != nil {
		c[settingsKey] = settings
	}
	return nil
}

// toGeneric re-encodes v so the Config only ever holds plain JSON values.
func toGeneric(v any) (any, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("driver: encode: %w", err)
	}
	var out any
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("driver: decode: %w", err)
	}
	return out, nil
}
