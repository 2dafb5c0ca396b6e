// Package config loads and saves the staletick account configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/staletick/internal/ports/secondary"
)

// Default endpoints for the production marketplace and its support portal.
const (
	DefaultMarketplaceURL = "https://funpay.com"
	DefaultSupportURL     = "https://support.funpay.com"
)

// Config represents the flat staletick configuration. The golden key is
// the account's long-lived credential; everything else has defaults.
type Config struct {
	GoldenKey      string `json:"golden_key"`
	Username       string `json:"username"`
	UserAgent      string `json:"user_agent,omitempty"`
	Locale         string `json:"locale,omitempty"`
	MarketplaceURL string `json:"marketplace_url,omitempty"`
	SupportURL     string `json:"support_url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// Dir returns the staletick state directory (~/.staletick).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".staletick"), nil
}

// LoadConfig reads config.json from the staletick state directory.
// Returns an error if no config exists - caller should handle accordingly.
func LoadConfig() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(filepath.Join(dir, "config.json"))
}

// LoadConfigFrom reads a config file at an explicit path.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes config.json to the staletick state directory.
func SaveConfig(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the fields a working pipeline cannot do without.
func (c *Config) Validate() error {
	if c.GoldenKey == "" {
		return errors.New("config is missing golden_key")
	}
	if c.Username == "" {
		return errors.New("config is missing username")
	}
	return nil
}

// Account builds the request parameters used by the HTTP adapters.
func (c *Config) Account() secondary.Account {
	timeout := time.Duration(c.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	locale := c.Locale
	if locale == "" {
		locale = "ru"
	}
	return secondary.Account{
		GoldenKey:      c.GoldenKey,
		Username:       c.Username,
		UserAgent:      c.UserAgent,
		Locale:         locale,
		RequestTimeout: timeout,
	}
}

// Marketplace returns the marketplace base URL, defaulted when unset.
func (c *Config) Marketplace() string {
	if c.MarketplaceURL != "" {
		return c.MarketplaceURL
	}
	return DefaultMarketplaceURL
}

// Support returns the support portal base URL, defaulted when unset.
func (c *Config) Support() string {
	if c.SupportURL != "" {
		return c.SupportURL
	}
	return DefaultSupportURL
}
