// Package config provides configuration management for the alert service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"pricewatch/internal/errors"
	"pricewatch/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Alpaca   AlpacaConfig   `mapstructure:"alpaca"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds the HTTP control surface configuration.
type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	TriggerToken string `mapstructure:"trigger_token"`
}

// WatchConfig holds the evaluation configuration.
type WatchConfig struct {
	// Watchlist is a comma-separated list of symbols evaluated by default.
	Watchlist string `mapstructure:"watchlist"`
	// Rules is the per-symbol threshold specification string,
	// e.g. "AAPL:below=170,above=200;TSLA:below=180".
	Rules string `mapstructure:"rules"`
	// PctThreshold is the absolute percent-change alert threshold.
	PctThreshold float64 `mapstructure:"pct_threshold"`
	// CooldownMinutes is the per-condition notification cooldown.
	CooldownMinutes int `mapstructure:"cooldown_minutes"`
	// IntervalMinutes is the scheduled run interval; 0 disables the scheduler.
	IntervalMinutes int `mapstructure:"interval_minutes"`
}

// NotifyConfig holds notification configuration.
type NotifyConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

// AlpacaConfig holds market data API credentials.
type AlpacaConfig struct {
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
}

// DatabaseConfig holds the state store configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  bool   `mapstructure:"file"`
	Path  string `mapstructure:"path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/pricewatch"
	}
	return filepath.Join(home, ".config", "pricewatch")
}

// Load loads configuration from the specified directory and applies
// environment variable overrides. If configDir is empty, the default config
// directory is used. A missing config file is not an error. Commands that run
// evaluation call Validate before using the result; Load itself only fails on
// unreadable files and malformed values.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	// A config file may set these to "" explicitly; fall back to defaults.
	if cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(DefaultConfigDir(), "pricewatch.db")
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Path == "" {
		cfg.Logging.Path = filepath.Join(DefaultConfigDir(), "logs", "pricewatch.log")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("watch.watchlist", "AAPL,MSFT,TSLA")
	v.SetDefault("watch.rules", "")
	v.SetDefault("watch.pct_threshold", 10.0)
	v.SetDefault("watch.cooldown_minutes", 30)
	v.SetDefault("watch.interval_minutes", 0)
	v.SetDefault("database.path", filepath.Join(DefaultConfigDir(), "pricewatch.db"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.path", filepath.Join(DefaultConfigDir(), "logs", "pricewatch.log"))
}

// applyEnvOverrides lets environment variables override file values. Numeric
// overrides that fail to parse are an immediate configuration error rather
// than a silent fallback to the default.
func applyEnvOverrides(cfg *Config) error {
	if s := os.Getenv("PRICEWATCH_WATCHLIST"); s != "" {
		cfg.Watch.Watchlist = s
	}
	if s := os.Getenv("PRICEWATCH_RULES"); s != "" {
		cfg.Watch.Rules = s
	}
	if s := os.Getenv("PRICEWATCH_PCT_THRESHOLD"); s != "" {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.NewValidationError("PRICEWATCH_PCT_THRESHOLD", s, "not a number")
		}
		cfg.Watch.PctThreshold = n
	}
	if s := os.Getenv("PRICEWATCH_COOLDOWN_MINUTES"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.NewValidationError("PRICEWATCH_COOLDOWN_MINUTES", s, "not an integer")
		}
		cfg.Watch.CooldownMinutes = n
	}
	if s := os.Getenv("PRICEWATCH_INTERVAL_MINUTES"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.NewValidationError("PRICEWATCH_INTERVAL_MINUTES", s, "not an integer")
		}
		cfg.Watch.IntervalMinutes = n
	}
	if s := os.Getenv("PRICEWATCH_PORT"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return errors.NewValidationError("PRICEWATCH_PORT", s, "not an integer")
		}
		cfg.Server.Port = n
	}
	if s := os.Getenv("PRICEWATCH_TRIGGER_TOKEN"); s != "" {
		cfg.Server.TriggerToken = s
	}
	if s := os.Getenv("PRICEWATCH_WEBHOOK_URL"); s != "" {
		cfg.Notify.WebhookURL = s
	}
	if s := os.Getenv("PRICEWATCH_DB_PATH"); s != "" {
		cfg.Database.Path = s
	}
	if s := os.Getenv("ALPACA_API_KEY"); s != "" {
		cfg.Alpaca.APIKey = s
	}
	if s := os.Getenv("ALPACA_API_SECRET"); s != "" {
		cfg.Alpaca.APISecret = s
	}
	return nil
}

// Validate checks required values and numeric constraints. It fails fast at
// startup so a malformed value never silently degrades evaluation behavior.
func (c *Config) Validate() error {
	if c.Notify.WebhookURL == "" {
		return errors.NewValidationError("notify.webhook_url", "", "webhook URL is required")
	}
	if c.Alpaca.APIKey == "" || c.Alpaca.APISecret == "" {
		return errors.NewValidationError("alpaca", "", "API key and secret are required")
	}
	if c.Server.TriggerToken == "" {
		return errors.NewValidationError("server.trigger_token", "", "trigger token is required")
	}
	if c.Watch.PctThreshold <= 0 {
		return errors.NewValidationError("watch.pct_threshold", c.Watch.PctThreshold, "must be positive")
	}
	if c.Watch.CooldownMinutes < 0 {
		return errors.NewValidationError("watch.cooldown_minutes", c.Watch.CooldownMinutes, "must not be negative")
	}
	if c.Watch.IntervalMinutes < 0 {
		return errors.NewValidationError("watch.interval_minutes", c.Watch.IntervalMinutes, "must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.NewValidationError("server.port", c.Server.Port, "must be a valid port")
	}
	return nil
}

// Symbols returns the normalized watchlist.
func (c *Config) Symbols() []string {
	return models.NormalizeSymbols(strings.Split(c.Watch.Watchlist, ","))
}

// Cooldown returns the cooldown as a duration.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Watch.CooldownMinutes) * time.Minute
}

// Interval returns the scheduler interval as a duration; 0 disables it.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Watch.IntervalMinutes) * time.Minute
}
