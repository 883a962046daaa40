package catalog

import (
	"errors"
	"time"
)

type Config struct {
	BaseURL  string        `env:"CATALOG_BASE_URL" default:"https://restcountries.com/v3.1"`
	Timeout  time.Duration `env:"CATALOG_TIMEOUT" default:"10s"`
	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL" default:"10m"`
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("catalog base URL must be set")
	}
	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		BaseURL:  "https://restcountries.com/v3.1",
		Timeout:  10 * time.Second,
		CacheTTL: 10 * time.Minute,
	}
}
