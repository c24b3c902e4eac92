// Package config loads taskmate settings from an optional YAML file and
// TASKMATE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"

	NotifierDesktop = "desktop"
	NotifierLog     = "log"

	appName = "taskmate"
)

type Config struct {
	Env      string `yaml:"env" env:"TASKMATE_ENV" env-default:"prod"`
	LogLevel string `yaml:"log_level" env:"TASKMATE_LOG_LEVEL" env-default:"info"`

	// Paths default to files under DataDir when left empty
	DataDir     string `yaml:"data_dir" env:"TASKMATE_DATA_DIR"`
	DBPath      string `yaml:"db_path" env:"TASKMATE_DB_PATH"`
	SessionPath string `yaml:"session_path" env:"TASKMATE_SESSION_PATH"`
	LogPath     string `yaml:"log_path" env:"TASKMATE_LOG_PATH"`

	Reminder ReminderConfig `yaml:"reminder"`
}

type ReminderConfig struct {
	Interval            time.Duration `yaml:"interval" env:"TASKMATE_REMINDER_INTERVAL" env-default:"60s"`
	NotificationTimeout time.Duration `yaml:"notification_timeout" env:"TASKMATE_NOTIFICATION_TIMEOUT" env-default:"10s"`
	Notifier            string        `yaml:"notifier" env:"TASKMATE_NOTIFIER" env-default:"desktop"`
}

// Load reads configPath (if given) and the environment. A .env file in
// the working directory is loaded first when present.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := new(Config)
	if configPath == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	} else if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", configPath, err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolvePaths() error {
	if c.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return err
		}
		c.DataDir = dir
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, appName+".db")
	}
	if c.SessionPath == "" {
		c.SessionPath = filepath.Join(c.DataDir, "session.json")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(c.DataDir, appName+".log")
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("config: unknown env %q", c.Env)
	}
	switch c.Reminder.Notifier {
	case NotifierDesktop, NotifierLog:
	default:
		return fmt.Errorf("config: unknown notifier %q", c.Reminder.Notifier)
	}
	if c.Reminder.Interval <= 0 {
		return fmt.Errorf("config: reminder interval must be positive")
	}
	return nil
}

// defaultDataDir uses the XDG data directory or falls back to ~/.local/share
func defaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appName), nil
}
