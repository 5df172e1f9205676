// Package config loads the countrylist configuration file.
//
// The file is YAML and every key is optional: values absent from the file
// keep their defaults, and a missing file is the same as an empty one.
// Unknown keys are rejected so a typo does not silently fall back to a
// default.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/countrylist/internal/model"
)

// Catalog source kinds.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceRemote   = "remote"
)

const (
	appName        = "countrylist"
	configFileName = "config.yaml"

	defaultCatalogURL     = "https://restcountries.com/v2/all"
	defaultCatalogTimeout = 10 * time.Second
	defaultSeedTimeout    = 2 * time.Second
	defaultCountry        = "IN"
	defaultMaxDistanceKm  = 2500
)

// Config is the complete, merged configuration.
type Config struct {
	// DataDir holds the persisted saved list. A leading "~/" expands to
	// the user's home directory.
	DataDir string `yaml:"data_dir" json:"dataDir"`

	Catalog  CatalogConfig  `yaml:"catalog" json:"catalog"`
	Location LocationConfig `yaml:"location" json:"location"`
	Seed     SeedConfig     `yaml:"seed" json:"seed"`
}

// CatalogConfig selects where the country catalog comes from.
type CatalogConfig struct {
	// Source is one of SourceEmbedded, SourceFile or SourceRemote.
	Source string `yaml:"source" json:"source"`

	// Path is the catalog file read when Source is SourceFile.
	Path string `yaml:"path" json:"path,omitempty"`

	// URL is the listing endpoint fetched when Source is SourceRemote.
	URL string `yaml:"url" json:"url"`

	// Timeout bounds each remote request.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Retries is the number of extra attempts after a retryable failure.
	Retries int `yaml:"retries" json:"retries"`
}

// LocationConfig drives the seeding lookup. A configured fix stands in
// for a device location service.
type LocationConfig struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
	HasFix    bool    `yaml:"has_fix" json:"hasFix"`

	// DefaultCountry is seeded whenever the lookup fails or times out.
	DefaultCountry string `yaml:"default_country" json:"defaultCountry"`

	// MaxDistanceKm is the reverse geocoder cutoff.
	MaxDistanceKm float64 `yaml:"max_distance_km" json:"maxDistanceKm"`
}

// SeedConfig controls first-run seeding of the saved list.
type SeedConfig struct {
	// Auto seeds an empty saved list whenever it is displayed.
	Auto bool `yaml:"auto" json:"auto"`

	// Timeout bounds the wait for the location lookup.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Catalog: CatalogConfig{
			Source:  SourceEmbedded,
			URL:     defaultCatalogURL,
			Timeout: defaultCatalogTimeout,
		},
		Location: LocationConfig{
			Enabled:        true,
			DefaultCountry: defaultCountry,
			MaxDistanceKm:  defaultMaxDistanceKm,
		},
		Seed: SeedConfig{
			Auto:    true,
			Timeout: defaultSeedTimeout,
		},
	}
}

// DefaultPath returns the config file location under the user config
// directory, e.g. ~/.config/countrylist/config.yaml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("."+appName, "data")
	}
	return filepath.Join(dir, appName, "data")
}

// Load reads the configuration at path, or at DefaultPath when path is
// empty, and validates it.
//
// A missing file yields Default. Keys present in the file override the
// defaults one by one.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	if err := decode(f, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Location.DefaultCountry = model.NormalizeCode(cfg.Location.DefaultCountry)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// decode merges the YAML document from r into cfg.
func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err := dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		// Empty document.
		return nil
	}
	return err
}

// Validate checks value ranges and cross-field requirements.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceEmbedded:
	case SourceFile:
		if strings.TrimSpace(c.Catalog.Path) == "" {
			return errors.New("catalog.path is required when catalog.source is \"file\"")
		}
	case SourceRemote:
		u, err := url.Parse(c.Catalog.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("catalog.url must be an http(s) URL, got %q", c.Catalog.URL)
		}
	default:
		return fmt.Errorf("catalog.source must be one of %s, %s, %s; got %q",
			SourceEmbedded, SourceFile, SourceRemote, c.Catalog.Source)
	}

	if c.Catalog.Timeout < 0 {
		return errors.New("catalog.timeout must not be negative")
	}
	if c.Catalog.Retries < 0 {
		return errors.New("catalog.retries must not be negative")
	}

	if err := model.ValidateCode(c.Location.DefaultCountry); err != nil {
		return fmt.Errorf("location.default_country: %w", err)
	}
	if c.Location.MaxDistanceKm < 0 {
		return errors.New("location.max_distance_km must not be negative")
	}
	if c.Location.HasFix {
		if err := c.Location.Fix().Validate(); err != nil {
			return fmt.Errorf("location: %w", err)
		}
	}

	if c.Seed.Timeout <= 0 {
		return errors.New("seed.timeout must be positive")
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir must not be empty")
	}
	return nil
}

// Fix returns the configured location fix, or nil when HasFix is false.
func (l LocationConfig) Fix() *model.Coordinate {
	if !l.HasFix {
		return nil
	}
	return &model.Coordinate{Latitude: l.Latitude, Longitude: l.Longitude}
}

// ResolvedDataDir returns DataDir with a leading "~/" expanded.
func (c *Config) ResolvedDataDir() (string, error) {
	dir := c.DataDir
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to expand %s: %w", dir, err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return filepath.Clean(dir), nil
}

// Marshal renders c as YAML in the same layout Load accepts.
func (c *Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return out, nil
}
