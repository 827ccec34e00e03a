package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration.
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database"`
	Market   MarketConfig   `json:"market" yaml:"market"`
	Quote    QuoteConfig    `json:"quote" yaml:"quote"`
}

// DatabaseConfig locates the SQLite store.
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// MarketConfig controls symbol normalization and display.
type MarketConfig struct {
	Suffix   string `json:"suffix" yaml:"suffix"`     // appended to bare symbols, e.g. ".NS"
	Currency string `json:"currency" yaml:"currency"` // display symbol, e.g. "₹"
}

// QuoteConfig controls the live price source.
type QuoteConfig struct {
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"` // empty selects the public endpoint
	Timeout  string `json:"timeout,omitempty" yaml:"timeout,omitempty"`   // e.g. "10s"
}

// ParseTimeout converts the timeout string to a time.Duration.
func (q QuoteConfig) ParseTimeout() (time.Duration, error) {
	if q.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(q.Timeout)
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Market.Suffix != "" && !strings.HasPrefix(c.Market.Suffix, ".") {
		return fmt.Errorf("market.suffix must start with '.'")
	}
	if c.Quote.Timeout != "" {
		if _, err := c.Quote.ParseTimeout(); err != nil {
			return fmt.Errorf("quote.timeout: %w", err)
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "./fintrack.sqlite",
		},
		Market: MarketConfig{
			Suffix:   ".NS",
			Currency: "₹",
		},
		Quote: QuoteConfig{
			Timeout: "10s",
		},
	}
}
