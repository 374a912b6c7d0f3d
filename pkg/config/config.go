// Package config loads zwavegen settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-zwavegen/pkg/assets"
	"github.com/goliatone/go-zwavegen/pkg/registry"
)

// Environment variables that override file values.
const (
	EnvRegistryURL = "ZWAVEGEN_REGISTRY_URL"
	EnvImageURL    = "ZWAVEGEN_IMAGE_URL"
	EnvTimeout     = "ZWAVEGEN_TIMEOUT"
	EnvLocale      = "ZWAVEGEN_LOCALE"
	EnvLogLevel    = "ZWAVEGEN_LOG_LEVEL"
)

// Config holds all zwavegen configuration.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Manifest ManifestConfig `yaml:"manifest"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RegistryConfig configures registry and image lookups.
type RegistryConfig struct {
	ProductURL string `yaml:"product_url"`
	ImageURL   string `yaml:"image_url"`
	Timeout    string `yaml:"timeout"` // duration string, e.g. "30s"
}

// ManifestConfig configures fragment generation.
type ManifestConfig struct {
	Locale          string `yaml:"locale"`
	StripHTML       bool   `yaml:"strip_html"`
	GroupNumberBase int    `yaml:"group_number_base"`
}

// AssetsConfig configures where downloaded assets land.
type AssetsConfig struct {
	ImagePath string `yaml:"image_path"` // relative to the driver directory
}

// LoggingConfig configures the zap logger built by the CLI.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Registry: RegistryConfig{
			ProductURL: registry.DefaultProductURL,
			ImageURL:   assets.DefaultImageURL,
			Timeout:    "30s",
		},
		Manifest: ManifestConfig{
			Locale:          "en",
			GroupNumberBase: 10,
		},
		Assets: AssetsConfig{
			ImagePath: assets.DefaultImagePath,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path over the defaults, applies environment overrides, and
// validates the result. An empty path or a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv(EnvRegistryURL)); v != "" {
		c.Registry.ProductURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvImageURL)); v != "" {
		c.Registry.ImageURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		c.Registry.Timeout = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLocale)); v != "" {
		c.Manifest.Locale = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks values that cannot be defaulted silently.
func (c Config) Validate() error {
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	if base := c.Manifest.GroupNumberBase; base != 0 && (base < 2 || base > 36) {
		return fmt.Errorf("config: group_number_base %d out of range 2..36", base)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("config: unknown logging format %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logging level %q", c.Logging.Level)
	}
	return nil
}

// RequestTimeout parses Registry.Timeout. Bare integers are read as seconds.
func (c Config) RequestTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Registry.Timeout)
	if raw == "" {
		return 0, nil
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid registry timeout %q: %w", raw, err)
	}
	return d, nil
}
