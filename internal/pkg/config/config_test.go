package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	c := qt.New(t)

	cfg, err := LoadWith(context.Background(), "users", envconfig.MapLookuper(map[string]string{
		"DATABASE_URL": "postgres://localhost/users?sslmode=disable",
	}))
	c.Assert(err, qt.IsNil)

	c.Check(cfg.Port, qt.Equals, "8080")
	c.Check(cfg.Env, qt.Equals, "development")
	c.Check(cfg.LogLevel, qt.Equals, "info")
	c.Check(cfg.LogPretty, qt.IsFalse)
	c.Check(cfg.StoreDriver, qt.Equals, DriverPostgres)
	c.Check(cfg.AutoMigrate, qt.IsFalse)
	c.Check(cfg.ShutdownTimeout, qt.Equals, 10*time.Second)
	c.Check(cfg.Postgres.MaxOpenConns, qt.Equals, 25)
	c.Check(cfg.Postgres.MaxIdleConns, qt.Equals, 5)
	c.Check(cfg.Postgres.ConnMaxLifetime, qt.Equals, 5*time.Minute)
	c.Check(cfg.Mongo.URI, qt.Equals, "mongodb://localhost:27017")
	c.Check(cfg.Mongo.Database, qt.Equals, "users")
	c.Check(cfg.Redis.Addr, qt.Equals, "")
	c.Check(cfg.Redis.IdempotencyTTL, qt.Equals, 24*time.Hour)
}

func TestLoadWith(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		check   func(c *qt.C, cfg *Config)
	}{
		{
			name:    "postgres without url",
			env:     map[string]string{},
			wantErr: "config: DATABASE_URL is required for the postgres store",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"STORE_DRIVER": "sqlite"},
			wantErr: `config: unknown STORE_DRIVER "sqlite"`,
		},
		{
			name:    "malformed duration",
			env:     map[string]string{"STORE_DRIVER": "memory", "SHUTDOWN_TIMEOUT": "soon"},
			wantErr: "config: .*",
		},
		{
			name: "memory needs nothing",
			env:  map[string]string{"STORE_DRIVER": "memory"},
			check: func(c *qt.C, cfg *Config) {
				c.Check(cfg.StoreDriver, qt.Equals, DriverMemory)
			},
		},
		{
			name: "mongo with overrides",
			env: map[string]string{
				"STORE_DRIVER":    "mongo",
				"MONGO_URI":       "mongodb://mongo:27017",
				"MONGO_DB":        "bookings",
				"REDIS_ADDR":      "redis:6379",
				"REDIS_DB":        "2",
				"IDEMPOTENCY_TTL": "1h",
				"PORT":            "9090",
				"LOG_PRETTY":      "true",
				"AUTO_MIGRATE":    "true",
			},
			check: func(c *qt.C, cfg *Config) {
				c.Check(cfg.Mongo.URI, qt.Equals, "mongodb://mongo:27017")
				c.Check(cfg.Mongo.Database, qt.Equals, "bookings")
				c.Check(cfg.Redis.Addr, qt.Equals, "redis:6379")
				c.Check(cfg.Redis.DB, qt.Equals, 2)
				c.Check(cfg.Redis.IdempotencyTTL, qt.Equals, time.Hour)
				c.Check(cfg.Port, qt.Equals, "9090")
				c.Check(cfg.LogPretty, qt.IsTrue)
				c.Check(cfg.AutoMigrate, qt.IsTrue)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			cfg, err := LoadWith(context.Background(), "reservations", envconfig.MapLookuper(tt.env))
			if tt.wantErr != "" {
				c.Assert(err, qt.ErrorMatches, tt.wantErr)
				return
			}
			c.Assert(err, qt.IsNil)
			tt.check(c, cfg)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	c := qt.New(t)

	c.Check(LoadEnvFile(""), qt.IsNil)
	c.Check(LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")), qt.IsNil)

	path := filepath.Join(t.TempDir(), ".env")
	c.Assert(os.WriteFile(path, []byte("BOOKING_CONFIG_TEST_VAR=from-file\n"), 0o600), qt.IsNil)
	t.Setenv("BOOKING_CONFIG_TEST_VAR", "")
	os.Unsetenv("BOOKING_CONFIG_TEST_VAR")

	c.Assert(LoadEnvFile(path), qt.IsNil)
	c.Check(os.Getenv("BOOKING_CONFIG_TEST_VAR"), qt.Equals, "from-file")
}
