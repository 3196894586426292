package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// UI origins allowed by CORS
	AllowedOrigins []string `toml:"allowed_origins"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// persistence
	StoreBackend   string `toml:"store_backend"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	RedisKeyPrefix string `toml:"redis_key_prefix"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// images & remote services
	ImagesDir          string `toml:"images_dir"`
	ImageLookupBaseURL string `toml:"image_lookup_base_url"`
	CloudSyncBaseURL   string `toml:"cloud_sync_base_url"`

	// calendar days (ledger, rollover) are computed in this timezone
	Timezone string `toml:"timezone"`

	SyncRateLimitAllowedPerMin int `toml:"sync_rate_limit_allowed_per_min"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var (
		cfg     *Config
		envName string
	)
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg, envName = t.Development, "development"
	case "prod", "production":
		cfg, envName = t.Production, "production"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s not found", envName)
	}
	cfg.Environment = envName
	return cfg, nil
}

// Load reads the TOML config file and returns the config for the given environment
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", cfg.Environment, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.StoreBackend == "" {
		c.StoreBackend = StoreBackendRedis
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.ImageLookupBaseURL == "" {
		c.ImageLookupBaseURL = "https://wger.de"
	}
	if c.CloudSyncBaseURL == "" {
		c.CloudSyncBaseURL = "https://jsonblob.com/api/jsonBlob"
	}
	if c.SyncRateLimitAllowedPerMin <= 0 {
		c.SyncRateLimitAllowedPerMin = 10
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 {
		errs = append(errs, errors.New("port not set"))
	}
	switch c.StoreBackend {
	case StoreBackendRedis:
		if c.RedisHost == "" || c.RedisPort == "" {
			errs = append(errs, errors.New("redis host/port not set"))
		}
	case StoreBackendPostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
			errs = append(errs, errors.New("postgres host/port/db name not set"))
		}
	case StoreBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store backend: %s", c.StoreBackend))
	}
	if c.ImagesDir == "" {
		errs = append(errs, errors.New("images dir not set"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	return errors.Join(errs...)
}

// Location returns the configured timezone, UTC when it cannot be loaded
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
