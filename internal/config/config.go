package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       App
	HTTP      HTTP
	Probe     Probe
	Metrics   Metrics
	Log       Log
	Storage   Storage
	Postgres  Postgres
	Redis     Redis
	Market    Market
	Country   Country
	Catalog   Catalog
	RateLimit RateLimit
	Queue     Queue
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"rp-market"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

var (
	ErrUnknownDriver  = errors.New("unknown storage driver")
	ErrMissingDSN     = errors.New("PG_DSN is required for the postgres driver")
	ErrQueueNeedRedis = errors.New("ledger queue needs REDIS_ADDRESS")
)

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Validate: %w", err)
	}

	return config, nil
}

// Validate проверяет сочетания параметров, которые env не умеет выразить тегами.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverMemory, DriverRedis, DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver)
	}

	if c.Queue.Enabled && c.Redis.Address == "" {
		return ErrQueueNeedRedis
	}

	return nil
}
