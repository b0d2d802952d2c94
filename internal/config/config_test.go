package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "", cfg.DB)
	assert.False(t, cfg.NoColor)
	assert.True(t, cfg.AssumeUTC)
	assert.Equal(t, ".timestamp", cfg.Selector)
	assert.Equal(t, 60, cfg.RefreshInterval)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 18080, cfg.Port)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	// Loading from a non-existent file should return defaults
	cfg, err := LoadFromPath("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPath_ValidFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
db = "/custom/db/path.db"
no_color = true
assume_utc = false
selector = "time.ago"
refresh_interval = 15
host = "0.0.0.0"
port = 9000
`
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/custom/db/path.db", cfg.DB)
	assert.True(t, cfg.NoColor)
	assert.False(t, cfg.AssumeUTC)
	assert.Equal(t, "time.ago", cfg.Selector)
	assert.Equal(t, 15, cfg.RefreshInterval)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
}

func TestLoadFromPath_PartialFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	err := os.WriteFile(configPath, []byte(`selector = ".stamp"`), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	// Specified value
	assert.Equal(t, ".stamp", cfg.Selector)
	// Default values
	assert.Equal(t, "", cfg.DB)
	assert.True(t, cfg.AssumeUTC)
	assert.Equal(t, 60, cfg.RefreshInterval)
}

func TestLoadFromPath_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	err := os.WriteFile(configPath, []byte(`invalid toml {{{{ content`), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
}

func TestLoadFromPath_EmptyPath(t *testing.T) {
	cfg, err := LoadFromPath("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
db = "/file/db/path.db"
assume_utc = true
selector = ".file"
refresh_interval = 30
port = 9000
`
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	t.Setenv("TIMEAGO_DB", "/env/db/path.db")
	t.Setenv("TIMEAGO_NO_COLOR", "1")
	t.Setenv("TIMEAGO_ASSUME_UTC", "false")
	t.Setenv("TIMEAGO_SELECTOR", ".env")
	t.Setenv("TIMEAGO_REFRESH_INTERVAL", "5")
	t.Setenv("TIMEAGO_HOST", "127.0.0.1")
	t.Setenv("TIMEAGO_PORT", "9100")

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	// Environment variables should override file values
	assert.Equal(t, "/env/db/path.db", cfg.DB)
	assert.True(t, cfg.NoColor)
	assert.False(t, cfg.AssumeUTC)
	assert.Equal(t, ".env", cfg.Selector)
	assert.Equal(t, 5, cfg.RefreshInterval)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9100, cfg.Port)
}

func TestEnvOverrides_NoColorAnyValue(t *testing.T) {
	testCases := []string{"1", "true", "yes", "anything", ""}

	for _, val := range testCases {
		t.Run("value="+val, func(t *testing.T) {
			t.Setenv("TIMEAGO_NO_COLOR", val)
			cfg, err := LoadFromPath("")
			require.NoError(t, err)
			assert.True(t, cfg.NoColor, "TIMEAGO_NO_COLOR=%q should enable no_color", val)
		})
	}
}

func TestEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	err := os.WriteFile(configPath, []byte("refresh_interval = 45\nport = 9000\n"), 0644)
	require.NoError(t, err)

	for _, v := range []string{"invalid", "0", "-10"} {
		t.Setenv("TIMEAGO_REFRESH_INTERVAL", v)
		t.Setenv("TIMEAGO_PORT", v)
		cfg, err := LoadFromPath(configPath)
		require.NoError(t, err)
		assert.Equal(t, 45, cfg.RefreshInterval, "interval %q", v)
		assert.Equal(t, 9000, cfg.Port, "port %q", v)
	}

	t.Setenv("TIMEAGO_PORT", "70000")
	t.Setenv("TIMEAGO_ASSUME_UTC", "maybe")
	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.AssumeUTC)
}

func TestInterval(t *testing.T) {
	assert.Equal(t, 60*time.Second, DefaultConfig().Interval())
	assert.Equal(t, 5*time.Second, (&Config{RefreshInterval: 5}).Interval())
	assert.Equal(t, 60*time.Second, (&Config{RefreshInterval: 0}).Interval())
	assert.Equal(t, 60*time.Second, (&Config{RefreshInterval: -3}).Interval())
}

func TestGetDB(t *testing.T) {
	cfg := &Config{DB: "/custom/path.db"}
	assert.Equal(t, "/custom/path.db", cfg.GetDB())

	cfg = &Config{DB: ""}
	assert.Equal(t, "", cfg.GetDB())
}

func TestWriteConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "subdir", "config.toml")

	err := WriteConfigFile(configPath)
	require.NoError(t, err)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "timeago configuration file")
	assert.Contains(t, string(content), "assume_utc")
	assert.Contains(t, string(content), "refresh_interval")

	// The sample is all comments, so it loads as defaults.
	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSampleConfig(t *testing.T) {
	sample := SampleConfig()
	for _, env := range []string{
		"TIMEAGO_DB", "TIMEAGO_NO_COLOR", "TIMEAGO_ASSUME_UTC",
		"TIMEAGO_SELECTOR", "TIMEAGO_REFRESH_INTERVAL", "TIMEAGO_HOST", "TIMEAGO_PORT",
	} {
		assert.Contains(t, sample, env)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	assert.Contains(t, path, ".timeago")
	assert.Contains(t, path, "config.toml")
}

func TestPriorityOrder(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	// No file, no env -> defaults
	cfg, err := LoadFromPath(filepath.Join(dir, "nonexistent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.RefreshInterval)

	// File set, no env -> file value
	err = os.WriteFile(configPath, []byte(`refresh_interval = 45`), 0644)
	require.NoError(t, err)

	cfg, err = LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.RefreshInterval)

	// File set, env set -> env value
	t.Setenv("TIMEAGO_REFRESH_INTERVAL", "90")
	cfg, err = LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.RefreshInterval)
}
