package app

import (
	"time"

	"github.com/kamara/atlas/app/catalog"
	"github.com/kamara/atlas/app/database"
	"github.com/kamara/atlas/app/user"
	"github.com/kamara/atlas/internal/nexus"
)

type Config struct {
	DB      database.Config
	Catalog catalog.Config
	User    user.Config

	AppHost string `env:"APP_HOST" default:"localhost"`
	AppPort string `env:"APP_PORT" default:"8080"`
	Env     string `env:"APP_ENV" default:"development"`

	CacheBackend   string        `env:"CACHE_BACKEND" default:"memory"`
	RedisAddr      string        `env:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" default:"0"`
	RedisOpTimeout time.Duration `env:"REDIS_OP_TIMEOUT" default:"100ms"`
}

// Validate checks every config section that carries its own invariants.
func (c *Config) Validate() error {
	if err := c.DB.Validate(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	return c.User.Validate()
}

// LoadConfig loads the application configuration from environment
// variables or a config file.
func LoadConfig() (*Config, error) {
	c := &Config{}
	err := nexus.NewLoader().Load(c)
	return c, err
}
