package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Record store drivers accepted in STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	StoreDriver     string        `env:"STORE_DRIVER,     default=postgres"`
	AutoMigrate     bool          `env:"AUTO_MIGRATE,     default=false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type PostgresConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,    default=25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,    default=5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=5m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB"`
}

// RedisConfig enables idempotent creates when Addr is set.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// Load reads configuration for service from environment variables using
// go-envconfig.
func Load(ctx context.Context, service string) (*Config, error) {
	return LoadWith(ctx, service, envconfig.OsLookuper())
}

// LoadWith is Load with an explicit variable source.
func LoadWith(ctx context.Context, service string, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = service
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.Postgres.URL == "" {
			return nil, errors.New("config: DATABASE_URL is required for the postgres store")
		}
	case DriverMongo, DriverMemory:
	default:
		return nil, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return &cfg, nil
}

// LoadEnvFile seeds the process environment from a .env file. Variables that
// are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}
