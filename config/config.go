package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config is populated from environment variables.
type Config struct {
	ServerAddress  string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0:8080"`
	PostgresConn   string `env:"POSTGRES_CONN,required"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://migrations"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}
