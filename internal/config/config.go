// Package config provides configuration management for bbfmt.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr   = ":8080"
	DefaultMaxBodyBytes = 1 << 20
	DefaultTimeout      = 10 * time.Second
)

// Config holds the bbfmt configuration.
type Config struct {
	ListenAddr   string            `yaml:"listen_addr,omitempty"`
	APIKey       string            `yaml:"api_key,omitempty"`
	RemoteURL    string            `yaml:"remote_url,omitempty"`
	MaxBodyBytes int64             `yaml:"max_body_bytes,omitempty"`
	Timeout      string            `yaml:"timeout,omitempty"`
	MaxDepth     int               `yaml:"max_depth,omitempty"`
	Formatters   []FormatterConfig `yaml:"formatters,omitempty"`
}

// FormatterConfig describes one external formatter command.
type FormatterConfig struct {
	Name      string   `yaml:"name,omitempty"`
	Command   string   `yaml:"command"`
	Args      []string `yaml:"args,omitempty"`
	Languages []string `yaml:"languages"`
}

// Validate checks that all set fields are well formed.
func (c *Config) Validate() error {
	if c.ListenAddr != "" {
		if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
			return fmt.Errorf("invalid listen_addr: %w", err)
		}
	}

	if c.RemoteURL != "" && !strings.HasPrefix(c.RemoteURL, "http://") && !strings.HasPrefix(c.RemoteURL, "https://") {
		return errors.New("remote_url must use http or https")
	}

	if c.MaxBodyBytes < 0 {
		return errors.New("max_body_bytes must not be negative")
	}
	if c.MaxDepth < 0 {
		return errors.New("max_depth must not be negative")
	}

	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
	}

	for i, f := range c.Formatters {
		if f.Command == "" {
			return fmt.Errorf("formatters[%d]: command is required", i)
		}
		if len(f.Languages) == 0 {
			return fmt.Errorf("formatters[%d]: at least one language is required", i)
		}
	}

	return nil
}

// ValidateServer additionally requires the fields needed to run the server.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return errors.New("api_key is required")
	}
	return nil
}

// ValidateRemote additionally requires the fields needed to use a remote server.
func (c *Config) ValidateRemote() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.RemoteURL == "" {
		return errors.New("remote_url is required")
	}
	if c.APIKey == "" {
		return errors.New("api_key is required")
	}
	return nil
}

// Addr returns the listen address, falling back to the default.
func (c *Config) Addr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}

// BodyLimit returns the maximum request body size.
func (c *Config) BodyLimit() int64 {
	if c.MaxBodyBytes <= 0 {
		return DefaultMaxBodyBytes
	}
	return c.MaxBodyBytes
}

// FormatTimeout returns the per-block formatter timeout.
func (c *Config) FormatTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	return DefaultTimeout
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Precedence: BBFMT_API_KEY → API_KEY → existing config value
func (c *Config) LoadFromEnv() {
	if key := getEnvWithFallback("BBFMT_API_KEY", "API_KEY"); key != "" {
		c.APIKey = key
	}
	if addr := os.Getenv("BBFMT_LISTEN_ADDR"); addr != "" {
		c.ListenAddr = addr
	}
	if remote := os.Getenv("BBFMT_REMOTE_URL"); remote != "" {
		c.RemoteURL = remote
	}
}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "bbfmt", "config.yml")
	}

	// Fall back to ~/.config/bbfmt/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bbfmt", "config.yml")
	}

	return filepath.Join(home, ".config", "bbfmt", "config.yml")
}

// ResolvePath returns path, or the default path when path is empty.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	return DefaultConfigPath()
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file holds the API key: user read/write only
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file is not an error; a file that cannot be parsed is.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
