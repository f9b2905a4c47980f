// Package config handles runtime configuration for the inkwell server:
// defaults, an optional YAML file overlay, and environment variable
// overrides, applied in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server binary needs to start. Secrets have no
// defaults; the auth engine rejects empty or shared secrets at build time.
type Config struct {
	Addr        string
	DatabaseDSN string
	RedisAddr   string

	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	LogLevel     string
	OTLPEndpoint string
	Production   bool
}

// fileConfig mirrors Config for the YAML overlay. Durations travel as
// strings ("15m", "168h") and pointers distinguish absent keys from zero
// values.
type fileConfig struct {
	Addr          *string `yaml:"addr"`
	DatabaseDSN   *string `yaml:"database_dsn"`
	RedisAddr     *string `yaml:"redis_addr"`
	AccessSecret  *string `yaml:"access_secret"`
	RefreshSecret *string `yaml:"refresh_secret"`
	AccessTTL     *string `yaml:"access_ttl"`
	RefreshTTL    *string `yaml:"refresh_ttl"`
	LogLevel      *string `yaml:"log_level"`
	OTLPEndpoint  *string `yaml:"otlp_endpoint"`
	Production    *bool   `yaml:"production"`
}

// Defaults returns development settings. The empty DatabaseDSN selects the
// in-memory store; the empty RedisAddr disables login throttling.
func Defaults() Config {
	return Config{
		Addr:       ":8080",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		LogLevel:   "info",
	}
}

// Load builds a Config by applying defaults, then overlaying an optional
// YAML file, then INKWELL_* environment variables. A missing file at path is
// not an error; an unreadable or malformed one is.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := overlayEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if fc.Addr != nil {
		cfg.Addr = *fc.Addr
	}
	if fc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *fc.DatabaseDSN
	}
	if fc.RedisAddr != nil {
		cfg.RedisAddr = *fc.RedisAddr
	}
	if fc.AccessSecret != nil {
		cfg.AccessSecret = *fc.AccessSecret
	}
	if fc.RefreshSecret != nil {
		cfg.RefreshSecret = *fc.RefreshSecret
	}
	if fc.AccessTTL != nil {
		d, err := time.ParseDuration(*fc.AccessTTL)
		if err != nil {
			return fmt.Errorf("config: access_ttl: %w", err)
		}
		cfg.AccessTTL = d
	}
	if fc.RefreshTTL != nil {
		d, err := time.ParseDuration(*fc.RefreshTTL)
		if err != nil {
			return fmt.Errorf("config: refresh_ttl: %w", err)
		}
		cfg.RefreshTTL = d
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.OTLPEndpoint != nil {
		cfg.OTLPEndpoint = *fc.OTLPEndpoint
	}
	if fc.Production != nil {
		cfg.Production = *fc.Production
	}
	return nil
}

func overlayEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setString("INKWELL_ADDR", &cfg.Addr)
	setString("INKWELL_DATABASE_DSN", &cfg.DatabaseDSN)
	setString("INKWELL_REDIS_ADDR", &cfg.RedisAddr)
	setString("INKWELL_ACCESS_SECRET", &cfg.AccessSecret)
	setString("INKWELL_REFRESH_SECRET", &cfg.RefreshSecret)
	setString("INKWELL_LOG_LEVEL", &cfg.LogLevel)
	setString("INKWELL_OTLP_ENDPOINT", &cfg.OTLPEndpoint)

	if v, ok := os.LookupEnv("INKWELL_ACCESS_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: INKWELL_ACCESS_TTL: %w", err)
		}
		cfg.AccessTTL = d
	}
	if v, ok := os.LookupEnv("INKWELL_REFRESH_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: INKWELL_REFRESH_TTL: %w", err)
		}
		cfg.RefreshTTL = d
	}
	if v, ok := os.LookupEnv("INKWELL_PRODUCTION"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: INKWELL_PRODUCTION: %w", err)
		}
		cfg.Production = b
	}
	return nil
}
