package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/booking-platform/services/internal/api"
	"github.com/booking-platform/services/internal/api/handler"
	"github.com/booking-platform/services/internal/core/ports"
	"github.com/booking-platform/services/internal/infrastructure/db/memory"
	mongostore "github.com/booking-platform/services/internal/infrastructure/db/mongo"
	"github.com/booking-platform/services/internal/infrastructure/db/postgres"
	redisstore "github.com/booking-platform/services/internal/infrastructure/db/redis"
	"github.com/booking-platform/services/internal/pkg/config"
)

// stores holds the connections opened for one process. Only the fields of
// the configured driver are set.
type stores struct {
	driver string
	pg     *sqlx.DB
	mongo  *mongo.Database
	redis  *goredis.Client
	idem   ports.IdempotencyStore
}

// openStores connects to the configured record store and, when REDIS_ADDR is
// set, to Redis for idempotency keys.
func openStores(ctx context.Context, service string, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	s := &stores{driver: cfg.StoreDriver}

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, postgres.Config{
			DSN:             cfg.Postgres.URL,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		s.pg = db
	case config.DriverMongo:
		_, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  service,
		})
		if err != nil {
			return nil, err
		}
		s.mongo = db
	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("record store ready")

	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:       cfg.Redis.Addr,
			DB:         cfg.Redis.DB,
			ClientName: service,
		})
		if err != nil {
			_ = s.close(ctx)
			return nil, err
		}
		s.redis = client
		s.idem = redisstore.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency keys enabled")
	}

	return s, nil
}

func (s *stores) reservationRepository() ports.ReservationRepository {
	switch s.driver {
	case config.DriverPostgres:
		return postgres.NewReservationRepository(s.pg)
	case config.DriverMongo:
		return mongostore.NewReservationRepository(s.mongo)
	default:
		return memory.NewReservationRepository()
	}
}

func (s *stores) userRepository() ports.UserRepository {
	switch s.driver {
	case config.DriverPostgres:
		return postgres.NewUserRepository(s.pg)
	case config.DriverMongo:
		return mongostore.NewUserRepository(s.mongo)
	default:
		return memory.NewUserRepository()
	}
}

// migrate applies the service's schema: DDL on Postgres, indexes on MongoDB.
func (s *stores) migrate(ctx context.Context, service string) error {
	switch s.driver {
	case config.DriverPostgres:
		return postgres.Migrate(ctx, s.pg, service)
	case config.DriverMongo:
		switch service {
		case api.ServiceReservations:
			return mongostore.NewReservationRepository(s.mongo).EnsureIndexes(ctx)
		case api.ServiceUsers:
			return mongostore.NewUserRepository(s.mongo).EnsureIndexes(ctx)
		}
		return fmt.Errorf("unknown service %q", service)
	}
	return nil
}

// checks returns the readiness probes of every opened dependency.
func (s *stores) checks() map[string]handler.Check {
	checks := make(map[string]handler.Check)
	if s.pg != nil {
		checks["postgres"] = s.pg.PingContext
	}
	if s.mongo != nil {
		checks["mongodb"] = mongostore.Ping(s.mongo.Client())
	}
	if s.redis != nil {
		checks["redis"] = redisstore.Ping(s.redis)
	}
	return checks
}

func (s *stores) close(ctx context.Context) error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.pg != nil {
		errs = append(errs, s.pg.Close())
	}
	if s.mongo != nil {
		errs = append(errs, s.mongo.Client().Disconnect(ctx))
	}
	return errors.Join(errs...)
}
