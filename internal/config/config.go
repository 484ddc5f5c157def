package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Feed    FeedConfig    `toml:"feed"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// FeedConfig contains upstream CSV feed settings.
type FeedConfig struct {
	DailyURL           string `toml:"daily_url"`
	WeeklyURL          string `toml:"weekly_url"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
	SnapshotTTLMinutes int    `toml:"snapshot_ttl_minutes"`
	RefreshCron        string `toml:"refresh_cron"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies SNAP_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("SNAP_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SNAP_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if u := os.Getenv("SNAP_FEED_DAILY_URL"); u != "" {
		config.Feed.DailyURL = u
	}
	if u := os.Getenv("SNAP_FEED_WEEKLY_URL"); u != "" {
		config.Feed.WeeklyURL = u
	}
	if ttl := os.Getenv("SNAP_FEED_SNAPSHOT_TTL_MINUTES"); ttl != "" {
		if m, err := strconv.Atoi(ttl); err == nil {
			config.Feed.SnapshotTTLMinutes = m
		}
	}
	if spec := os.Getenv("SNAP_FEED_REFRESH_CRON"); spec != "" {
		config.Feed.RefreshCron = spec
	}
	if level := os.Getenv("SNAP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks mandatory fields and returns a list of human-readable
// issues. An empty list means the configuration is usable.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if c.Feed.DailyURL == "" {
		issues = append(issues, "feed.daily_url is required")
	} else if _, err := url.ParseRequestURI(c.Feed.DailyURL); err != nil {
		issues = append(issues, fmt.Sprintf("feed.daily_url is not a valid URL: %v", err))
	}
	if c.Feed.WeeklyURL == "" {
		issues = append(issues, "feed.weekly_url is required")
	} else if _, err := url.ParseRequestURI(c.Feed.WeeklyURL); err != nil {
		issues = append(issues, fmt.Sprintf("feed.weekly_url is not a valid URL: %v", err))
	}
	if c.Feed.TimeoutSeconds <= 0 {
		issues = append(issues, fmt.Sprintf("feed.timeout_seconds must be positive (got %d)", c.Feed.TimeoutSeconds))
	}
	if c.Feed.SnapshotTTLMinutes <= 0 {
		issues = append(issues, fmt.Sprintf("feed.snapshot_ttl_minutes must be positive (got %d)", c.Feed.SnapshotTTLMinutes))
	}

	return issues
}
