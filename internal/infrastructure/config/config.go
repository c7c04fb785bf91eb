// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	port := cfg.Server.Port
//	extractorURL := cfg.Services.ExtractorURL
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Services      ServicesConfig      `yaml:"services"`
	Sync          SyncConfig          `yaml:"sync"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int      `yaml:"port" env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
}

// ServicesConfig holds the endpoints of the external extraction and
// policy-check collaborators
type ServicesConfig struct {
	ExtractorURL   string `yaml:"extractor_url" env:"EXTRACTOR_URL" envDefault:"http://localhost:3042/expenseextractor"`
	PolicyCheckURL string `yaml:"policy_check_url" env:"POLICY_CHECK_URL" envDefault:"http://localhost:3042/expensepolicycheck"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"SERVICE_TIMEOUT_SECONDS" envDefault:"30"`
}

// SyncConfig holds the card-feed refresh settings
type SyncConfig struct {
	Enabled  bool   `yaml:"enabled" env:"SYNC_ENABLED" envDefault:"true"`
	Schedule string `yaml:"schedule" env:"SYNC_SCHEDULE" envDefault:"@every 15m"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" envDefault:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${EXTRACTOR_URL})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	return &cfg, nil
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() (*Config, error) {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from the specified path, falls back to
// environment variables
func LoadOrEnvWithPath(path string) (*Config, error) {
	if cfg, err := Load(path); err == nil {
		return cfg, nil
	}
	return LoadFromEnv()
}
