// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/moments/internal/language"
)

// Config holds the application configuration.
type Config struct {
	API      APIConfig      `toml:"api"`
	Refresh  RefreshConfig  `toml:"refresh"`
	Language LanguageConfig `toml:"language"`
	Session  SessionConfig  `toml:"session"`
	UI       UIConfig       `toml:"ui"`
}

// APIConfig holds words API settings.
type APIConfig struct {
	BaseURL string `toml:"base_url"` // e.g., "http://localhost:9292"
	Timeout string `toml:"timeout"`  // e.g., "10s"
}

// RefreshConfig holds the auto-refresh settings.
type RefreshConfig struct {
	Interval string `toml:"interval"` // e.g., "60s"
}

// LanguageConfig holds language selection settings.
type LanguageConfig struct {
	Default        string `toml:"default"`         // language code, e.g., "english"
	DefaultCountry string `toml:"default_country"` // shown when the language doesn't resolve
	CatalogPath    string `toml:"catalog_path"`    // optional; embedded catalog when empty
}

// SessionConfig holds session store settings.
type SessionConfig struct {
	DBPath string `toml:"db_path"` // ":memory:" or a file that is cleared on exit
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:9292",
			Timeout: "10s",
		},
		Refresh: RefreshConfig{
			Interval: "60s",
		},
		Language: LanguageConfig{
			Default:        "english",
			DefaultCountry: "us",
		},
		Session: SessionConfig{
			DBPath: ":memory:",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "moments", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Language.CatalogPath = expandPath(cfg.Language.CatalogPath)
	cfg.Session.DBPath = expandPath(cfg.Session.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MOMENTS_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("MOMENTS_API_TIMEOUT"); v != "" {
		cfg.API.Timeout = v
	}
	if v := os.Getenv("MOMENTS_REFRESH_INTERVAL"); v != "" {
		cfg.Refresh.Interval = v
	}
	if v := os.Getenv("MOMENTS_LANGUAGE"); v != "" {
		cfg.Language.Default = v
	}
	if v := os.Getenv("MOMENTS_DEFAULT_COUNTRY"); v != "" {
		cfg.Language.DefaultCountry = v
	}
	if v := os.Getenv("MOMENTS_CATALOG_PATH"); v != "" {
		cfg.Language.CatalogPath = v
	}
	if v := os.Getenv("MOMENTS_SESSION_DB"); v != "" {
		cfg.Session.DBPath = v
	}
	if v := os.Getenv("MOMENTS_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("base_url must be set")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("base_url must start with http:// or https://, got %q", c.API.BaseURL)
	}
	if _, err := parsePositiveDuration(c.API.Timeout, "timeout"); err != nil {
		return err
	}
	if _, err := parsePositiveDuration(c.Refresh.Interval, "interval"); err != nil {
		return err
	}
	if c.Language.Default == "" {
		return errors.New("default language must be set")
	}
	if c.Language.DefaultCountry == "" {
		return errors.New("default_country must be set")
	}
	if c.Session.DBPath == "" {
		return errors.New("session db_path must be set")
	}
	return nil
}

// ValidateCatalog checks the language settings against a loaded catalog.
func (c *Config) ValidateCatalog(cat *language.Catalog) error {
	if !cat.Contains(c.Language.Default) {
		return fmt.Errorf("default language %q is not in the catalog", c.Language.Default)
	}
	if _, ok := cat.Country(c.Language.DefaultCountry); !ok {
		return fmt.Errorf("default_country %q is not in the catalog", c.Language.DefaultCountry)
	}
	return nil
}

// Catalog loads the configured language catalog and checks the language settings against it.
func (c *Config) Catalog() (*language.Catalog, error) {
	cat, err := language.Load(c.Language.CatalogPath)
	if err != nil {
		return nil, err
	}
	if err := c.ValidateCatalog(cat); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cat, nil
}

// Timeout returns the API request timeout.
func (c *Config) Timeout() time.Duration {
	d, _ := parsePositiveDuration(c.API.Timeout, "timeout")
	return d
}

// RefreshInterval returns the auto-refresh period.
func (c *Config) RefreshInterval() time.Duration {
	d, _ := parsePositiveDuration(c.Refresh.Interval, "interval")
	return d
}

func parsePositiveDuration(s, field string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like \"60s\", got %q", field, s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", field, s)
	}
	return d, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
