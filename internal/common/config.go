// Package common provides shared utilities for the kundli gateway
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the gateway
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Prokerala ProkeralaConfig `toml:"prokerala"`
	Nominatim NominatimConfig `toml:"nominatim"`
}

// ProkeralaConfig holds Prokerala astrology API configuration
type ProkeralaConfig struct {
	BaseURL      string `toml:"base_url"`
	TokenURL     string `toml:"token_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RateLimit    int    `toml:"rate_limit"`
	Timeout      string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ProkeralaConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// NominatimConfig holds Nominatim geocoding API configuration
type NominatimConfig struct {
	BaseURL   string `toml:"base_url"`
	UserAgent string `toml:"user_agent"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *NominatimConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 10000,
		},
		Clients: ClientsConfig{
			Prokerala: ProkeralaConfig{
				BaseURL:   "https://api.prokerala.com",
				TokenURL:  "https://api.prokerala.com/token",
				RateLimit: 10,
				Timeout:   "30s",
			},
			Nominatim: NominatimConfig{
				BaseURL:   "https://nominatim.openstreetmap.org",
				UserAgent: "KundliGateway/1.0",
				RateLimit: 1, // Nominatim usage policy: max 1 request/second
				Timeout:   "30s",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("KUNDLI_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("KUNDLI_HOST"); host != "" {
		config.Server.Host = host
	}

	// PORT is the conventional hosting-platform variable; KUNDLI_PORT wins if both are set
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if port := os.Getenv("KUNDLI_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("KUNDLI_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if v := os.Getenv("PROKERALA_CLIENT_ID"); v != "" {
		config.Clients.Prokerala.ClientID = v
	}
	if v := os.Getenv("PROKERALA_CLIENT_SECRET"); v != "" {
		config.Clients.Prokerala.ClientSecret = v
	}
	if v := os.Getenv("KUNDLI_NOMINATIM_URL"); v != "" {
		config.Clients.Nominatim.BaseURL = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
