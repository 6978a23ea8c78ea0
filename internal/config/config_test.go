package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/platekeeper/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.AutoRefresh)
	require.Equal(t, 500*time.Millisecond, cfg.AutoRefreshDebounce)
	require.Equal(t, 10*time.Second, cfg.Timeout)
	require.Equal(t, 30*time.Second, cfg.Cache.ListTTL)
	require.Equal(t, 5*time.Second, cfg.Dashboard.NotificationTTL, "notification hides after five seconds")
	require.True(t, cfg.Dashboard.ShowBlacklist)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Empty(t, cfg.DBPath, "empty db_path resolves at runtime")
	require.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: "timeout must be positive"},
		{name: "negative debounce", mutate: func(c *Config) { c.AutoRefreshDebounce = -time.Second }, wantErr: "auto_refresh_debounce"},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "log_level"},
		{name: "negative cache ttl", mutate: func(c *Config) { c.Cache.ListTTL = -1 }, wantErr: "cache.list_ttl"},
		{name: "zero cache ttl disables caching", mutate: func(c *Config) { c.Cache.ListTTL = 0 }},
		{name: "zero notification ttl", mutate: func(c *Config) { c.Dashboard.NotificationTTL = 0 }, wantErr: "dashboard.notification_ttl"},
		{name: "negative recent entries", mutate: func(c *Config) { c.Dashboard.RecentEntries = -2 }, wantErr: "dashboard.recent_entries"},
		{name: "sample rate above one", mutate: func(c *Config) { c.Tracing.SampleRate = 1.5 }, wantErr: "sample_rate"},
		{name: "unknown exporter", mutate: func(c *Config) { c.Tracing.Exporter = "zipkin" }, wantErr: "tracing.exporter"},
		{
			name: "enabled file exporter without path",
			mutate: func(c *Config) {
				c.Tracing = tracing.Config{Enabled: true, Exporter: "file", SampleRate: 1}
			},
			wantErr: "tracing.file_path is required",
		},
		{
			name: "enabled otlp without endpoint",
			mutate: func(c *Config) {
				c.Tracing = tracing.Config{Enabled: true, Exporter: "otlp", SampleRate: 1}
			},
			wantErr: "tracing.otlp_endpoint is required",
		},
		{
			name: "disabled file exporter without path",
			mutate: func(c *Config) {
				c.Tracing = tracing.Config{Exporter: "file"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDefaultConfigTemplate_LoadsWithViper(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	defaults := Defaults()
	require.Equal(t, defaults.AutoRefresh, cfg.AutoRefresh)
	require.Equal(t, defaults.AutoRefreshDebounce, cfg.AutoRefreshDebounce)
	require.Equal(t, defaults.Timeout, cfg.Timeout)
	require.Equal(t, defaults.Cache, cfg.Cache)
	require.Equal(t, defaults.Dashboard, cfg.Dashboard)
	require.Equal(t, defaults.LogLevel, cfg.LogLevel)
}

func TestWriteDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(configPath))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())
	require.Equal(t, "10s", v.GetString("timeout"))
	require.Equal(t, 5*time.Second, v.GetDuration("dashboard.notification_ttl"))
}
