package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains server configuration parameters.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    int    `env:"LOG_LEVEL" envDefault:"0"`

	// Base URL the emailed reset link points at (the front end).
	ResetBaseURL string `env:"RESET_BASE_URL" envDefault:"http://localhost:3000"`
	// Validity window for issued reset tokens.
	ResetTokenTTLMinutes int `env:"RESET_TOKEN_TTL_MINUTES" envDefault:"60"`

	SMTP SMTP `envPrefix:"SMTP_"`
}

// SMTP contains mail transport parameters.
type SMTP struct {
	Host     string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USER"`
	Password string `env:"PASS"`
	From     string `env:"FROM"`
}

// Load reads environment variables, optionally from a .env file if present.
func Load() (*Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
