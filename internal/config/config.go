// Package config provides configuration types and defaults for platekeeper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/platekeeper/internal/log"
	"github.com/zjrosen/platekeeper/internal/tracing"
)

// Config holds all configuration options for platekeeper.
type Config struct {
	// DBPath is the shared registry database. Empty resolves to
	// .platekeeper/platekeeper.db under the working directory.
	DBPath string `mapstructure:"db_path"`

	// AutoRefresh makes the dashboard pick up writes from other sessions.
	AutoRefresh         bool          `mapstructure:"auto_refresh"`
	AutoRefreshDebounce time.Duration `mapstructure:"auto_refresh_debounce"`

	// Timeout bounds a single CLI command, confirmation prompt included.
	Timeout time.Duration `mapstructure:"timeout"`

	LogLevel  string          `mapstructure:"log_level"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Tracing   tracing.Config  `mapstructure:"tracing"`
}

// CacheConfig controls the list snapshot cache.
type CacheConfig struct {
	// ListTTL is how long a plate or blacklist snapshot is reused. Zero disables caching.
	ListTTL time.Duration `mapstructure:"list_ttl"`
}

// DashboardConfig holds dashboard options.
type DashboardConfig struct {
	NotificationTTL time.Duration `mapstructure:"notification_ttl"` // how long the last-entry toast stays up
	ShowBlacklist   bool          `mapstructure:"show_blacklist"`
	RecentEntries   int           `mapstructure:"recent_entries"`
}

// DefaultTracesFilePath returns ~/.config/platekeeper/traces/traces.jsonl, or
// an empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "platekeeper", "traces", "traces.jsonl")
}

// Defaults returns a Config with default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()

	return Config{
		AutoRefresh:         true,
		AutoRefreshDebounce: 500 * time.Millisecond,
		Timeout:             10 * time.Second,
		LogLevel:            "debug",
		Cache: CacheConfig{
			ListTTL: 30 * time.Second,
		},
		Dashboard: DashboardConfig{
			NotificationTTL: 5 * time.Second,
			ShowBlacklist:   true,
			RecentEntries:   5,
		},
		Tracing: tc,
	}
}

// Validate checks every section of cfg.
func Validate(cfg Config) error {
	if err := ValidateTimeouts(cfg); err != nil {
		return err
	}
	if err := ValidateCache(cfg.Cache); err != nil {
		return err
	}
	if err := ValidateDashboard(cfg.Dashboard); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateTimeouts checks the command timeout and refresh debounce.
func ValidateTimeouts(cfg Config) error {
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.AutoRefreshDebounce < 0 {
		return fmt.Errorf("auto_refresh_debounce must not be negative, got %s", cfg.AutoRefreshDebounce)
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", cfg.LogLevel)
	}
	return nil
}

// ValidateCache checks cache configuration for errors.
func ValidateCache(cache CacheConfig) error {
	if cache.ListTTL < 0 {
		return fmt.Errorf("cache.list_ttl must not be negative, got %s", cache.ListTTL)
	}
	return nil
}

// ValidateDashboard checks dashboard configuration for errors.
func ValidateDashboard(d DashboardConfig) error {
	if d.NotificationTTL <= 0 {
		return fmt.Errorf("dashboard.notification_ttl must be positive, got %s", d.NotificationTTL)
	}
	if d.RecentEntries < 0 {
		return fmt.Errorf("dashboard.recent_entries must not be negative, got %d", d.RecentEntries)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	if tc.Exporter != "" {
		switch tc.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
		}
	}

	// Path requirements only matter once tracing is on
	if tc.Enabled {
		if tc.Exporter == "file" && tc.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# platekeeper configuration

# Shared registry database. Every operator session pointed at the same file
# sees the same plates. Relative paths resolve against the working directory.
# db_path: /srv/gate/platekeeper.db

# Refresh the dashboard when another session writes to the database
auto_refresh: true
auto_refresh_debounce: 500ms

# Upper bound for one command, including the confirmation prompt
timeout: 10s

# Minimum level written to the debug log (--debug): debug, info, warn, error
log_level: debug

cache:
  list_ttl: 30s          # reuse list snapshots between changes; 0 disables

dashboard:
  notification_ttl: 5s   # how long the last-entry notification stays visible
  show_blacklist: true   # show the blacklist count next to the plate count
  recent_entries: 5      # entries listed under the counters

# Tracing of registry workflows
# tracing:
#   enabled: false                 # default: false
#   exporter: file                 # none, file, stdout, otlp (default: file)
#   file_path: ~/.config/platekeeper/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # for the otlp exporter
#   sample_rate: 1.0               # 0.0-1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
