package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	// Base URL of the remote shop API, e.g. https://shop.example.com/api
	APIBaseURL string `env:"API_BASE_URL,required"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":3000"`

	// Path of the sqlite file holding the persisted session.
	StatePath string `env:"STATE_PATH" envDefault:"storefront.db"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
