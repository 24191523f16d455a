// Package config handles application configuration using Viper.
// Defaults, an optional YAML file and SHOECARD_* environment variables are
// merged in that priority order and unmarshalled into structs.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/fleveque/shoe-card-service/internal/variant"
)

// ErrInvalidRecencyMode is returned by Validate for an unknown recency.mode.
var ErrInvalidRecencyMode = errors.New("invalid recency mode")

// Config is the root configuration struct.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Recency   RecencyConfig   `mapstructure:"recency"`
	Pricing   PricingConfig   `mapstructure:"pricing"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type AuthConfig struct {
	APIKeys   []string `mapstructure:"api_keys"`
	AdminKeys []string `mapstructure:"admin_keys"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// RecencyConfig picks the "released in the last month" rule.
// Mode is "rolling" (WindowDays ending at now) or "calendar-month".
type RecencyConfig struct {
	Mode       string `mapstructure:"mode"`
	WindowDays int    `mapstructure:"window_days"`
}

// PricingConfig controls how prices are printed on cards.
type PricingConfig struct {
	Locale         string `mapstructure:"locale"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// Load reads configuration from a YAML file and environment variables.
// An empty configPath searches ./config.yaml and ./config/config.yaml.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("recency.mode", string(variant.ModeRolling))
	v.SetDefault("recency.window_days", variant.DefaultWindowDays)
	v.SetDefault("pricing.locale", "en-US")
	v.SetDefault("pricing.currency_symbol", "$")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// A missing file is fine unless the caller asked for a specific one.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && configPath != "" {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// SHOECARD_RECENCY_WINDOW_DAYS=14 -> recency.window_days=14
	v.SetEnvPrefix("SHOECARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail at first use.
func (c *Config) Validate() error {
	switch variant.RecencyMode(c.Recency.Mode) {
	case variant.ModeRolling, "":
		if c.Recency.WindowDays <= 0 {
			return fmt.Errorf("recency.window_days must be positive, got %d", c.Recency.WindowDays)
		}
	case variant.ModeCalendarMonth:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRecencyMode, c.Recency.Mode)
	}

	if _, err := language.Parse(c.Pricing.Locale); err != nil {
		return fmt.Errorf("pricing.locale %q: %w", c.Pricing.Locale, err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// Address returns the listen address string like "0.0.0.0:8080".
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RecencyRule builds the variant recency rule from the config.
func (r RecencyConfig) RecencyRule() (variant.RecencyRule, error) {
	return variant.NewRecencyRule(r.Mode, r.WindowDays)
}
