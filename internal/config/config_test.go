package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)

	cfg, err := Load("")
	require.NoError(t, err)

	dataDir := filepath.Join(xdg, "taskmate")
	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "taskmate.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dataDir, "session.json"), cfg.SessionPath)
	assert.Equal(t, filepath.Join(dataDir, "taskmate.log"), cfg.LogPath)
	assert.Equal(t, time.Minute, cfg.Reminder.Interval)
	assert.Equal(t, 10*time.Second, cfg.Reminder.NotificationTimeout)
	assert.Equal(t, NotifierDesktop, cfg.Reminder.Notifier)
}

func TestLoad_Env(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKMATE_ENV", EnvDev)
	t.Setenv("TASKMATE_LOG_LEVEL", "warn")
	t.Setenv("TASKMATE_DATA_DIR", dir)
	t.Setenv("TASKMATE_DB_PATH", filepath.Join(dir, "other.db"))
	t.Setenv("TASKMATE_REMINDER_INTERVAL", "5s")
	t.Setenv("TASKMATE_NOTIFIER", NotifierLog)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.Env)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "other.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "session.json"), cfg.SessionPath)
	assert.Equal(t, 5*time.Second, cfg.Reminder.Interval)
	assert.Equal(t, NotifierLog, cfg.Reminder.Notifier)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taskmate.yaml")
	content := `
env: local
log_level: debug
data_dir: ` + dir + `
reminder:
  interval: 30s
  notification_timeout: 3s
  notifier: log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "taskmate.db"), cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.Reminder.Interval)
	assert.Equal(t, 3*time.Second, cfg.Reminder.NotificationTimeout)
	assert.Equal(t, NotifierLog, cfg.Reminder.Notifier)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	t.Run("env", func(t *testing.T) {
		t.Setenv("TASKMATE_ENV", "staging")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("notifier", func(t *testing.T) {
		t.Setenv("TASKMATE_NOTIFIER", "pager")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("interval", func(t *testing.T) {
		t.Setenv("TASKMATE_REMINDER_INTERVAL", "0s")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
