package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Forecast  ForecastConfig  `yaml:"forecast" envconfig:"FORECAST"`
	Reconcile ReconcileConfig `yaml:"reconcile" envconfig:"RECONCILE"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s" validate:"gt=0"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"33554432" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// SecurityConfig contains request throttling configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"10" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"20" validate:"gt=0"`
}

// ForecastConfig contains the tuning constants of the baseline pipeline.
// The growth clip bounds and the allowed-squares window are operational
// policy, not derived values; they are configuration on purpose.
type ForecastConfig struct {
	GrowthClipMin      float64 `yaml:"growth_clip_min" envconfig:"GROWTH_CLIP_MIN" default:"-0.1"`
	GrowthClipMax      float64 `yaml:"growth_clip_max" envconfig:"GROWTH_CLIP_MAX" default:"1.3" validate:"gtfield=GrowthClipMin"`
	AllowedWindowWeeks int     `yaml:"allowed_window_weeks" envconfig:"ALLOWED_WINDOW_WEEKS" default:"6" validate:"gt=0"`
	ThreeWeekAdjust    bool    `yaml:"three_week_adjust" envconfig:"THREE_WEEK_ADJUST" default:"false"`
	AdjustThreshold    float64 `yaml:"adjust_threshold" envconfig:"ADJUST_THRESHOLD" default:"0.2" validate:"gte=0"`
	AdjustWindowWeeks  int     `yaml:"adjust_window_weeks" envconfig:"ADJUST_WINDOW_WEEKS" default:"3" validate:"gt=0"`
}

// ReconcileConfig describes the shape of the top-down planned-orders file
// and the fixed geography breakdown used by the redistribution passes.
type ReconcileConfig struct {
	PlannedRowCount int      `yaml:"planned_row_count" envconfig:"PLANNED_ROW_COUNT" default:"22" validate:"gt=0"`
	NamedRegions    []string `yaml:"named_regions" envconfig:"NAMED_REGIONS" default:"SAO_PAULO,RIO_DE_JANEIRO" validate:"min=1"`
	AggregateOrigin string   `yaml:"aggregate_origin" envconfig:"AGGREGATE_ORIGIN" default:"OTHER_REGIONS" validate:"required"`
	NationalOrigin  string   `yaml:"national_origin" envconfig:"NATIONAL_ORIGIN" default:"NATIONAL" validate:"required"`
}

// Origins returns the origin tags in file block order: the
// aggregate-minus-named-regions block first, then the national total,
// then one block per named region.
func (r ReconcileConfig) Origins() []string {
	origins := make([]string, 0, 2+len(r.NamedRegions))
	origins = append(origins, r.AggregateOrigin, r.NationalOrigin)
	origins = append(origins, r.NamedRegions...)
	return origins
}

// Load loads configuration from environment variables and an optional
// YAML file. File values fill in what the environment left unset; the
// environment always wins.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("BASELINE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := os.Getenv("BASELINE_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration with all defaults applied and no
// environment or file overrides. Used by the CLI entry points and tests.
func Default() *Config {
	var cfg Config
	// envconfig applies struct defaults even when no variables are set.
	if err := envconfig.Process("BASELINE_DEFAULTS_UNUSED", &cfg); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return &cfg
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileCfg, envCfg Config) Config {
	if envCfg.Server.Port == 0 {
		envCfg.Server = fileCfg.Server
	}
	if envCfg.Logging.Level == "" {
		envCfg.Logging = fileCfg.Logging
	}
	if envCfg.Forecast.GrowthClipMax == 0 && envCfg.Forecast.GrowthClipMin == 0 {
		envCfg.Forecast = fileCfg.Forecast
	}
	if envCfg.Reconcile.PlannedRowCount == 0 {
		envCfg.Reconcile = fileCfg.Reconcile
	}
	if !envCfg.Security.RateLimit.Enabled && envCfg.Security.RateLimit.RPS == 0 {
		envCfg.Security = fileCfg.Security
	}
	return envCfg
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
