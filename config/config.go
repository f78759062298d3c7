// Package config loads converter settings from defaults, an optional YAML
// file, a .env file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port            int           `yaml:"port" env:"PORT"`
	RateApiUrl      string        `yaml:"rate_api_url" env:"RATE_API_URL"`
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"REFRESH_INTERVAL"`
	HttpTimeout     time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT"`
	DefaultRate     float64       `yaml:"default_rate" env:"DEFAULT_RATE"`
	FixedAmounts    []float64     `yaml:"fixed_amounts" env:"FIXED_AMOUNTS" envSeparator:","`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Port:            8080,
		RateApiUrl:      "https://api.frankfurter.dev/v1",
		RefreshInterval: time.Hour,
		HttpTimeout:     5 * time.Second,
		DefaultRate:     1500,
		FixedAmounts:    []float64{20, 50, 100, 130, 160, 190, 250, 300, 400, 500},
		LogLevel:        "info",
	}
}

// Load builds the configuration. CONFIG_FILE names an optional YAML file and
// ENV_PATH an optional .env file (default ".env"); a missing .env is not an error.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config file: %w", err)
		}
		defer f.Close()
		if err := decodeYAML(f, &cfg); err != nil {
			return nil, fmt.Errorf("config file %v: %w", path, err)
		}
	}

	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = ".env"
	}
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %v: %w", envPath, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func decodeYAML(r io.Reader, cfg *Config) error {
	err := yaml.NewDecoder(r).Decode(cfg)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if c.RateApiUrl == "" {
		return errors.New("rate api url is required")
	}
	if c.RefreshInterval <= 0 {
		return errors.New("refresh interval must be positive")
	}
	if c.HttpTimeout <= 0 {
		return errors.New("http timeout must be positive")
	}
	if c.DefaultRate <= 0 {
		return errors.New("default rate must be positive")
	}
	if len(c.FixedAmounts) == 0 {
		return errors.New("at least one fixed amount is required")
	}
	for _, amount := range c.FixedAmounts {
		if amount <= 0 {
			return fmt.Errorf("fixed amount %v must be positive", amount)
		}
	}
	return nil
}

// Addr the listen address of the HTTP server
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
