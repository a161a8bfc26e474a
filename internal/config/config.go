// Package config loads moneymoves settings from TOML, .env and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDataDir  = "MONEYMOVES_DATA_DIR"
	EnvBackend  = "MONEYMOVES_BACKEND"
	EnvLogLevel = "MONEYMOVES_LOG_LEVEL"
	EnvCurrency = "MONEYMOVES_CURRENCY"
)

// Config holds all moneymoves configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Display DisplayConfig `toml:"display"`
	Log     LogConfig     `toml:"log"`
}

// GeneralConfig controls where and how the ledger is stored.
type GeneralConfig struct {
	DataDir   string `toml:"data_dir,omitempty"`
	Backend   string `toml:"backend"`
	Namespace string `toml:"namespace,omitempty"` // empty means the store default
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	CurrencySymbol string `toml:"currency_symbol"`
	Theme          string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Backend: "sqlite",
		},
		Display: DisplayConfig{
			CurrencySymbol: "$",
			Theme:          "flexoki-dark",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "moneymoves")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "moneymoves")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns the XDG data directory for the ledger.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "moneymoves")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "moneymoves")
}

// Load reads the config file (defaults if it doesn't exist), then applies
// a .env file from the working directory, if any, and environment
// overrides.
func Load() (Config, error) {
	cfg, err := LoadFile(ConfigPath())
	if err != nil {
		return cfg, err
	}

	// Variables already set in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	ApplyEnv(&cfg)
	return cfg, nil
}

// LoadFile reads a config file on top of the defaults. A missing file is
// not an error.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any MONEYMOVES_* variables that are set.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.General.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.Display.CurrencySymbol = v
	}
}

// ResolvedDataDir returns the configured data dir or the XDG default.
func (c Config) ResolvedDataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return DefaultDataDir()
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path, creating its directory.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
