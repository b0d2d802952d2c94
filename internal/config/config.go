// Package config provides configuration file and environment variable support for timeago.
//
// Configuration priority (highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Config file (~/.timeago/config.toml)
//  4. Built-in defaults
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the timeago configuration.
type Config struct {
	// DB is the path to the feed database file.
	// Default: ~/.timeago/timeago.db
	DB string `toml:"db"`

	// NoColor disables colored output.
	// Default: false
	NoColor bool `toml:"no_color"`

	// AssumeUTC reads timestamps without a zone ("2024-01-15 10:30:00",
	// "2024-01-15T10:30:00") as UTC. When false they are read as local time.
	// Default: true
	AssumeUTC bool `toml:"assume_utc"`

	// Selector finds timestamp elements in a page.
	// Default: ".timestamp"
	Selector string `toml:"selector"`

	// RefreshInterval is the number of seconds between refreshes.
	// Default: 60
	RefreshInterval int `toml:"refresh_interval"`

	// Host is the address the server binds to.
	// Default: "localhost"
	Host string `toml:"host"`

	// Port is the TCP port the server listens on.
	// Default: 18080
	Port int `toml:"port"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DB:              "", // Empty means use db.DefaultDBPath
		NoColor:         false,
		AssumeUTC:       true,
		Selector:        ".timestamp",
		RefreshInterval: 60,
		Host:            "localhost",
		Port:            18080,
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".timeago", "config.toml")
}

// Load loads configuration from the config file and environment variables.
// Environment variables take precedence over file settings.
// Returns default config if the config file doesn't exist.
func Load() (*Config, error) {
	return LoadFromPath(DefaultConfigPath())
}

// LoadFromPath loads configuration from a specific file path.
// Environment variables take precedence over file settings.
// Returns default config if the config file doesn't exist.
func LoadFromPath(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if _, err := toml.DecodeFile(configPath, cfg); err != nil {
				return nil, err
			}
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

// applyEnv applies environment variable overrides to the config.
func (c *Config) applyEnv() {
	if db := os.Getenv("TIMEAGO_DB"); db != "" {
		c.DB = db
	}

	// TIMEAGO_NO_COLOR - any value means true
	if _, ok := os.LookupEnv("TIMEAGO_NO_COLOR"); ok {
		c.NoColor = true
	}

	if v := os.Getenv("TIMEAGO_ASSUME_UTC"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AssumeUTC = b
		}
	}

	if sel := strings.TrimSpace(os.Getenv("TIMEAGO_SELECTOR")); sel != "" {
		c.Selector = sel
	}

	if v := os.Getenv("TIMEAGO_REFRESH_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RefreshInterval = n
		}
	}

	if host := os.Getenv("TIMEAGO_HOST"); host != "" {
		c.Host = host
	}

	if v := os.Getenv("TIMEAGO_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			c.Port = n
		}
	}
}

// GetDB returns the database path, or empty to signal use of db.DefaultDBPath.
func (c *Config) GetDB() string {
	return c.DB
}

// Interval returns the refresh interval, falling back to 60s for
// non-positive values.
func (c *Config) Interval() time.Duration {
	if c.RefreshInterval <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.RefreshInterval) * time.Second
}

// SampleConfig returns a sample configuration file content.
func SampleConfig() string {
	return `# timeago configuration file
# Location: ~/.timeago/config.toml
#
# Configuration priority (highest to lowest):
#   1. Command-line flags
#   2. Environment variables (TIMEAGO_*)
#   3. This config file
#   4. Built-in defaults

# Path to the feed database file
# Default: ~/.timeago/timeago.db
# Environment: TIMEAGO_DB
# db = "/path/to/timeago.db"

# Disable colored output
# Default: false
# Environment: TIMEAGO_NO_COLOR (any value = true)
# no_color = false

# Read timestamps without a zone ("2024-01-15 10:30:00") as UTC.
# Set to false to read them as local time.
# Default: true
# Environment: TIMEAGO_ASSUME_UTC
# assume_utc = true

# Selector for timestamp elements
# Default: ".timestamp"
# Environment: TIMEAGO_SELECTOR
# selector = ".timestamp"

# Seconds between refreshes of served pages
# Default: 60
# Environment: TIMEAGO_REFRESH_INTERVAL
# refresh_interval = 60

# Server bind address and port
# Environment: TIMEAGO_HOST, TIMEAGO_PORT
# host = "localhost"
# port = 18080
`
}

// WriteConfigFile writes the sample config file to the specified path.
// Creates parent directories if needed.
func WriteConfigFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(SampleConfig()), 0644)
}
