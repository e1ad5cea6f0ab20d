package config

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

// Config holds application configuration.
type Config struct {
	API APIConfig
	UI  UIConfig
	Log LogConfig
}

// APIConfig points at the bookkeeping backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	DateFormat     string `mapstructure:"date_format"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// Load reads configuration from file and env. A .env file in the working
// directory is loaded first. Env var overrides use prefix BOOKKEEP_.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("BOOKKEEP_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "bookkeep"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BOOKKEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:3000/v1")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("ui.currency_symbol", "₦")
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", defaultLogPath())
}

func (c Config) validate() error {
	var errs []string
	if strings.TrimSpace(c.API.BaseURL) == "" {
		errs = append(errs, "api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, "api.timeout must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Keys lists the settings Set accepts, in file order.
var Keys = []string{"api.base_url", "api.timeout", "ui.currency_symbol", "ui.date_format", "log.level", "log.path"}

// Set assigns one setting by its file key and revalidates.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api.base_url":
		c.API.BaseURL = value
	case "api.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("api.timeout: %w", err)
		}
		c.API.Timeout = d
	case "ui.currency_symbol":
		c.UI.CurrencySymbol = value
	case "ui.date_format":
		c.UI.DateFormat = value
	case "log.level":
		c.Log.Level = value
	case "log.path":
		c.Log.Path = value
	default:
		return fmt.Errorf("unknown setting %q (want one of %s)", key, strings.Join(Keys, ", "))
	}
	return c.validate()
}

// Get returns one setting by its file key.
func (c Config) Get(key string) (string, bool) {
	switch key {
	case "api.base_url":
		return c.API.BaseURL, true
	case "api.timeout":
		return c.API.Timeout.String(), true
	case "ui.currency_symbol":
		return c.UI.CurrencySymbol, true
	case "ui.date_format":
		return c.UI.DateFormat, true
	case "log.level":
		return c.Log.Level, true
	case "log.path":
		return c.Log.Path, true
	}
	return "", false
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("BOOKKEEP_CONFIG")
	if path == "" {
		path = filepath.Join(homeDir(), ".config", "bookkeep", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func defaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "bookkeep", "bookkeep.log")
	}
	return filepath.Join(homeDir(), ".local", "state", "bookkeep", "bookkeep.log")
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}
