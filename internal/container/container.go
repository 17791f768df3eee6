// Package container owns the process-wide dependencies built at startup and
// hands them to the router. Optional integrations are nil when unconfigured.
package container

import (
	"context"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-activities/config"
	repo "github.com/oksasatya/classroom-activities/internal/domain/repository"
	"github.com/oksasatya/classroom-activities/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/classroom-activities/internal/infrastructure/postgres"
	"github.com/oksasatya/classroom-activities/internal/seed"
	"github.com/oksasatya/classroom-activities/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users      repo.UserRepository
	Activities repo.ActivityRepository
	JWT        *helpers.JWTManager

	PGPool      *pgxpool.Pool
	Redis       *redis.Client
	Publisher   *helpers.RabbitPublisher
	ES          *elasticsearch.Client
	Attachments *helpers.GCSStore
}

// NewMemory builds a container backed by the in-process store with no
// external integrations. Tests and STORE_DRIVER=memory use it.
func NewMemory(cfg *config.Config, logger *logrus.Logger) *Container {
	db := memory.Open()
	return &Container{
		Config:     cfg,
		Logger:     logger,
		Users:      memory.NewUserRepository(db),
		Activities: memory.NewActivityRepository(db),
		JWT:        helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
	}
}

// New wires the store selected by cfg.StoreDriver and every configured integration.
// Failing optional integrations are logged and left nil.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	var c *Container
	switch strings.ToLower(cfg.StoreDriver) {
	case config.StoreDriverMemory:
		c = NewMemory(cfg, logger)
		if _, err := seed.Run(ctx, c.Users, c.Activities, logger); err != nil {
			return nil, pkgerrors.Wrap(err, "seed memory store")
		}
	case config.StoreDriverPostgres, "":
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return nil, err
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, err
		}
		c = &Container{
			Config:     cfg,
			Logger:     logger,
			PGPool:     pool,
			Users:      pginfra.NewUserRepository(pool),
			Activities: pginfra.NewActivityRepository(pool),
			JWT:        helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		}
	default:
		return nil, pkgerrors.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.RateLimitEnabled {
		if rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
			if err := helpers.PingRedis(ctx, rdb); err != nil {
				helpers.LogWarn(logger, "redis unavailable, rate limiting disabled", err, nil)
				_ = rdb.Close()
			} else {
				c.Redis = rdb
			}
		}
	}

	if cfg.NotificationsEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQNotifyQueue)
		if err != nil {
			helpers.LogWarn(logger, "rabbitmq unavailable, notifications disabled", err, nil)
		} else {
			c.Publisher = pub
		}
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		helpers.LogWarn(logger, "elasticsearch client init failed, search disabled", err, nil)
	} else if es != nil {
		c.ES = es
		if err := helpers.EnsureIndex(ctx, es, cfg.ESActivitiesIndex, helpers.ActivityIndexMapping); err != nil {
			helpers.LogWarn(logger, "elasticsearch index check failed", err, logrus.Fields{"index": cfg.ESActivitiesIndex})
		}
	}

	if cfg.GCSBucket != "" {
		store, err := helpers.NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsJSONPath)
		if err != nil {
			helpers.LogWarn(logger, "gcs client init failed, attachments disabled", err, nil)
		} else {
			c.Attachments = store
		}
	}
	return c, nil
}

// Close releases every owned connection.
func (c *Container) Close() {
	if c.Publisher != nil {
		c.Publisher.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Attachments != nil {
		_ = c.Attachments.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
