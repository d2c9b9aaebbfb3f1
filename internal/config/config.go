// Package config holds the umami configuration: store identity, the WhatsApp
// hand-off number, catalog and data locations, and logging behavior.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all umami configuration.
type Config struct {
	// Store identity shown in the TUI header.
	Name string `yaml:"name"`

	// Checkout hand-off settings.
	Checkout CheckoutConfig `yaml:"checkout"`

	// CatalogPath points at the YAML product catalog. Empty means the
	// embedded default catalog.
	CatalogPath string `yaml:"catalog_path"`

	// DataDir holds the SQLite database and log files.
	DataDir string `yaml:"data_dir"`

	// Logging behavior.
	Logging LoggingConfig `yaml:"logging"`
}

// CheckoutConfig configures the checkout wizard and order hand-off.
type CheckoutConfig struct {
	// WhatsAppNumber is the destination of the wa.me deep link,
	// in international format without the leading plus.
	WhatsAppNumber string `yaml:"whatsapp_number"`

	// ResetDelayMS is how long after the cart panel closes the wizard
	// waits before resetting to its initial step. Matches the panel's
	// close animation.
	ResetDelayMS int `yaml:"reset_delay_ms"`
}

// ResetDelay returns the wizard reset delay as a duration.
func (c CheckoutConfig) ResetDelay() time.Duration {
	return time.Duration(c.ResetDelayMS) * time.Millisecond
}

// LoggingConfig controls the categorized file logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Name: "Umami Congelados",
		Checkout: CheckoutConfig{
			WhatsAppNumber: "573022679121",
			ResetDelayMS:   300,
		},
		DataDir: defaultDataDir(),
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".umami"
	}
	return filepath.Join(home, ".umami")
}

// Load reads the config from path, filling any missing fields with defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// applyDefaults backfills zero values after an Unmarshal over the defaults
// replaced whole nested structs.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Name == "" {
		c.Name = d.Name
	}
	if c.Checkout.WhatsAppNumber == "" {
		c.Checkout.WhatsAppNumber = d.Checkout.WhatsAppNumber
	}
	if c.Checkout.ResetDelayMS <= 0 {
		c.Checkout.ResetDelayMS = d.Checkout.ResetDelayMS
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}

// DatabasePath returns the SQLite database location under the data dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "umami.db")
}
