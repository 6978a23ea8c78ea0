package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func readBack(t *testing.T, configPath string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())
	return v
}

func TestSaveDBPath_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".platekeeper", "config.yaml")

	require.NoError(t, SaveDBPath(configPath, "/mnt/gate/registry.db"))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Equal(t, "db_path: /mnt/gate/registry.db\n", string(data))
}

func TestSaveDBPath_PreservesCommentsAndKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	require.NoError(t, SaveDBPath(configPath, "/mnt/gate/registry.db"))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "# Refresh the dashboard when another session writes to the database")
	require.Contains(t, string(data), "# how long the last-entry notification stays visible")

	v := readBack(t, configPath)
	require.Equal(t, "/mnt/gate/registry.db", v.GetString("db_path"))
	require.True(t, v.GetBool("auto_refresh"))
	require.Equal(t, "30s", v.GetString("cache.list_ttl"))
}

func TestSaveDBPath_ReplacesExistingValue(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("db_path: old.db # shared volume\ntimeout: 5s\n"), 0o600))

	require.NoError(t, SaveDBPath(configPath, "new.db"))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "db_path: new.db # shared volume")
	require.Contains(t, string(data), "timeout: 5s")
	require.NotContains(t, string(data), "old.db")
}

func TestSaveScalar_CreatesNestedMapping(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("auto_refresh: false\n"), 0o600))

	require.NoError(t, SaveScalar(configPath, "dashboard.notification_ttl", "8s"))
	require.NoError(t, SaveScalar(configPath, "dashboard.show_blacklist", "false"))

	v := readBack(t, configPath)
	require.Equal(t, "8s", v.GetString("dashboard.notification_ttl"))
	require.False(t, v.GetBool("dashboard.show_blacklist"))
	require.False(t, v.GetBool("auto_refresh"))
}

func TestSaveScalar_RejectsNonMappingParent(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("cache: off\n"), 0o600))

	err := SaveScalar(configPath, "cache.list_ttl", "10s")
	require.ErrorContains(t, err, "config key cache is not a mapping")
}

func TestSaveScalar_RejectsInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("cache: [unclosed\n"), 0o600))

	err := SaveScalar(configPath, "db_path", "x.db")
	require.ErrorContains(t, err, "parsing config")
}

func TestSaveScalar_EmptyKey(t *testing.T) {
	require.Error(t, SaveScalar(filepath.Join(t.TempDir(), "c.yaml"), "", "x"))
}
