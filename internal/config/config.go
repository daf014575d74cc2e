// Package config loads server settings from defaults, an optional YAML file, and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the quote server settings.
type Config struct {
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	LogLevel       string        `yaml:"logLevel" validate:"oneof=debug info warn error"`
	LogFormat      string        `yaml:"logFormat" validate:"oneof=text json"`
	QuoteLatency   time.Duration `yaml:"quoteLatency" validate:"min=0"`
	AllowedOrigins []string      `yaml:"allowedOrigins" validate:"min=1,dive,required"`
	MetricsEnabled bool          `yaml:"metricsEnabled"`
}

// Default returns the settings used when nothing is configured.
// The 1.5s latency matches the delay the browser UI was designed around.
func Default() Config {
	return Config{
		Port:           8080,
		LogLevel:       "info",
		LogFormat:      "text",
		QuoteLatency:   1500 * time.Millisecond,
		AllowedOrigins: []string{"*"},
		MetricsEnabled: true,
	}
}

var validate = validator.New()

// Load builds the configuration. path may be empty, in which case QUOTEWIZ_CONFIG is consulted;
// when neither names a file only defaults and environment overrides apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("QUOTEWIZ_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func applyEnv(cfg *Config) error {
	if v := getEnv("PORT", ""); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", cfg.LogFormat))

	if v := getEnv("QUOTE_LATENCY", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid QUOTE_LATENCY %q: %w", v, err)
		}
		cfg.QuoteLatency = d
	}
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v := getEnv("METRICS_ENABLED", ""); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid METRICS_ENABLED %q: %w", v, err)
		}
		cfg.MetricsEnabled = enabled
	}
	return nil
}

// Addr is the listen address for the configured port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
