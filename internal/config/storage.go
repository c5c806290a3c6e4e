package config

import "time"

const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
)

type Storage struct {
	Driver         string `env:"STORAGE_DRIVER" envDefault:"file"`
	Dir            string `env:"STORAGE_DIR" envDefault:"./economy"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"./economy/market.db"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"market"`
}

type Postgres struct {
	DSN             string        `env:"PG_DSN" json:"-"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnectTimeout  time.Duration `env:"PG_CONNECT_TIMEOUT" envDefault:"10s"`
	// Migrations пустой список означает встроенные миграции.
	Migrations []string `env:"PG_MIGRATIONS" envSeparator:","`
}

type Redis struct {
	Address     string        `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
	Username    string        `env:"REDIS_USERNAME"`
	Password    string        `env:"REDIS_PASSWORD" json:"-"`
	DB          int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize    int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	DialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
}
