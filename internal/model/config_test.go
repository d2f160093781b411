package model_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studysync/studysync/internal/model"
)

// clearEnv unsets every variable LoadConfig consults for the test's duration.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_PATH", "PORT",
		"STUDYSYNC_DATABASE_PATH", "STUDYSYNC_SERVER_ADDR", "STUDYSYNC_SERVER_MODE",
		"STUDYSYNC_REMINDERS_POLL_INTERVAL_SEC", "STUDYSYNC_REMINDERS_BROWSER_NOTIFICATIONS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := model.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultDBPath, cfg.Database.Path)
	assert.Equal(t, model.DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Reminders.PollInterval())
	assert.False(t, cfg.Reminders.BrowserNotifications)
}

func TestLoadConfig_FileValues(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /tmp/study.db
server:
  addr: ":9000"
reminders:
  poll_interval_sec: 5
  browser_notifications: true
`), 0o644))

	cfg, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/study.db", cfg.Database.Path)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 5*time.Second, cfg.Reminders.PollInterval())
	assert.True(t, cfg.Reminders.BrowserNotifications)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "absent.yaml")

	t.Run("compat variables", func(t *testing.T) {
		t.Setenv("DB_PATH", "/data/compat.db")
		t.Setenv("PORT", "8123")

		cfg, err := model.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/data/compat.db", cfg.Database.Path)
		assert.Equal(t, ":8123", cfg.Server.Addr)
	})

	t.Run("prefixed variables win", func(t *testing.T) {
		t.Setenv("DB_PATH", "/data/compat.db")
		t.Setenv("STUDYSYNC_DATABASE_PATH", "/data/prefixed.db")
		t.Setenv("STUDYSYNC_REMINDERS_POLL_INTERVAL_SEC", "12")

		cfg, err := model.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/data/prefixed.db", cfg.Database.Path)
		assert.Equal(t, 12*time.Second, cfg.Reminders.PollInterval())
	})
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unterminated"), 0o644))

	_, err := model.LoadConfig(path)
	require.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := &model.AppConfig{
		Database:  model.DatabaseConfig{Path: "/srv/studysync.db"},
		Server:    model.ServerConfig{Addr: ":4100", Mode: "debug"},
		Reminders: model.RemindersConfig{PollIntervalSec: 15, BrowserNotifications: true},
	}

	require.NoError(t, model.SaveConfig(path, want))
	got, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
