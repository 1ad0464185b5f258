// Package config loads tracker settings from defaults, an optional YAML file
// and TODO_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	"github.com/tiwariParth/go-task-tracker/internal/storage"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendBolt   = "bbolt"
	BackendSQLite = "sqlite"
)

// Config holds every tunable of the tracker.
type Config struct {
	Backend    string `mapstructure:"backend" env:"TODO_BACKEND"`
	DataDir    string `mapstructure:"data_dir" env:"TODO_DATA_DIR"`
	StorageKey string `mapstructure:"storage_key" env:"TODO_STORAGE_KEY"`
	Locale     string `mapstructure:"locale" env:"TODO_LOCALE"`
	IDScheme   string `mapstructure:"id_scheme" env:"TODO_ID_SCHEME"`
	ListenAddr string `mapstructure:"listen_addr" env:"TODO_LISTEN_ADDR"`
	Log        Log    `mapstructure:"log"`
}

// Log configures the process logger.
type Log struct {
	Level  string `mapstructure:"level" env:"TODO_LOG_LEVEL"`
	Format string `mapstructure:"format" env:"TODO_LOG_FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:    BackendFile,
		DataDir:    DefaultDataDir(),
		StorageKey: storage.DefaultKey,
		Locale:     "en-US",
		IDScheme:   "time-random",
		ListenAddr: "127.0.0.1:8080",
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultDataDir returns $HOME/.todo-cli, or .todo-cli when there is no home.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".todo-cli"
	}
	return filepath.Join(home, ".todo-cli")
}

// DefaultPath returns the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// Load builds the configuration. An explicit path must exist; the default
// path is optional. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := loadFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.IDScheme = strings.ToLower(strings.TrimSpace(cfg.IDScheme))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// Validate rejects unknown backends and id schemes.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendFile, BackendBolt, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}

	switch c.IDScheme {
	case "time-random", "uuid":
	default:
		return fmt.Errorf("config: unknown id scheme %q", c.IDScheme)
	}

	if c.StorageKey == "" {
		return errors.New("config: storage key is empty")
	}
	if c.Backend != BackendMemory && c.DataDir == "" {
		return errors.New("config: data dir is empty")
	}
	return nil
}
