package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	// Path is the SQLite database file, or ":memory:".
	Path string `mapstructure:"path" yaml:"path"`
}

// ServerConfig holds HTTP transport settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`

	// Mode is the gin mode: "debug", "release" or "test".
	Mode string `mapstructure:"mode" yaml:"mode"`
}

// RemindersConfig holds reminder poller settings.
type RemindersConfig struct {
	// PollIntervalSec is how often (in seconds) due reminders are polled.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`

	// BrowserNotifications enables delivery to the browser sink.
	BrowserNotifications bool `mapstructure:"browser_notifications" yaml:"browser_notifications"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Reminders RemindersConfig `mapstructure:"reminders" yaml:"reminders"`
}

// PollInterval returns the reminder poll interval as a duration.
func (c RemindersConfig) PollInterval() time.Duration {
	if c.PollIntervalSec <= 0 {
		return DefaultPollIntervalSec * time.Second
	}
	return time.Duration(c.PollIntervalSec) * time.Second
}

// Defaults.
const (
	DefaultDBPath          = "data/studysync.db"
	DefaultAddr            = ":4000"
	DefaultPollIntervalSec = 30
)

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/studysync/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "studysync", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Path: DefaultDBPath},
		Server:   ServerConfig{Addr: DefaultAddr, Mode: "release"},
		Reminders: RemindersConfig{
			PollIntervalSec: DefaultPollIntervalSec,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A .env file in the working directory is loaded first; STUDYSYNC_* variables
// override file values, and DB_PATH / PORT are honored for compatibility.
// If the file does not exist, defaults (plus environment) are used.
func LoadConfig(path string) (*AppConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("studysync")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", DefaultDBPath)
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.mode", "release")
	v.SetDefault("reminders.poll_interval_sec", DefaultPollIntervalSec)
	v.SetDefault("reminders.browser_notifications", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if p := os.Getenv("DB_PATH"); p != "" &&
		os.Getenv("STUDYSYNC_DATABASE_PATH") == "" && !v.InConfig("database.path") {
		cfg.Database.Path = p
	}
	if port := os.Getenv("PORT"); port != "" &&
		os.Getenv("STUDYSYNC_SERVER_ADDR") == "" && !v.InConfig("server.addr") {
		cfg.Server.Addr = ":" + port
	}
	if cfg.Reminders.PollIntervalSec <= 0 {
		cfg.Reminders.PollIntervalSec = DefaultPollIntervalSec
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("server", cfg.Server)
	v.Set("reminders", cfg.Reminders)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
