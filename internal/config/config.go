package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ProjectID string `env:"PROJECTID"`
	Region    string `env:"REGION"`
	LogLevel  string `env:"LOGLEVEL" envDefault:"info"`
	Port      string `env:"PORT" envDefault:"8080"`

	// TimeZone is the IANA zone event times are displayed and entered in.
	TimeZone string `env:"TIMEZONE" envDefault:"UTC"`
	// TimeLayout is the matrix cell layout; %R is replaced by the day offset.
	TimeLayout string `env:"TIMELAYOUT" envDefault:"15:04 %R"`
	// CatalogPath overrides the built-in event code catalog.
	CatalogPath string `env:"CATALOGPATH"`
}

func New() (*Config, error) {
	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
