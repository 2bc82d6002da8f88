package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings, loaded from environment variables.
type Config struct {
	Port          string        `env:"PORT" envDefault:"8891"`
	DBPath        string        `env:"DB_PATH" envDefault:"data/zzchat.db"`
	ConfigPath    string        `env:"CONFIG_PATH" envDefault:"config/config.json"`
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"zzchat-dev-secret"`
	WeatherAPIKey string        `env:"WEATHER_API_KEY" envDefault:"6a772ccc79edf696"`
	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"20s"`
	CORSOrigins   string        `env:"CORS_ORIGINS" envDefault:"*"`
}

// LoadConfig parses the environment into a Config.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
