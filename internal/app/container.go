package app

import (
	"context"
	"log"
	"strings"
	"time"

	"intern-hub/internal/config"
	"intern-hub/internal/database"
	"intern-hub/internal/database/migration"
	dbpostgres "intern-hub/internal/database/postgres"
	"intern-hub/internal/database/seeder"
	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/submission"
	"intern-hub/internal/domain/user"
	"intern-hub/internal/infrastructure/cache"
	"intern-hub/internal/infrastructure/persistence/memory"
	"intern-hub/internal/infrastructure/persistence/postgres"
	"intern-hub/internal/metrics"
	"intern-hub/internal/pkg/jwt"
	"intern-hub/internal/ws"

	"github.com/pkg/errors"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Container owns the long-lived dependencies of one server instance.
type Container struct {
	Config config.Config
	Logger *log.Logger

	// DB is nil when the memory store is selected.
	DB    database.DB
	Store pinger

	Users       user.Repository
	Projects    project.Repository
	Submissions submission.Repository

	Cache   *cache.Redis
	JWT     *jwt.HMACService
	Hub     *ws.Hub
	Metrics *metrics.Metrics
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
	}

	switch strings.ToLower(strings.TrimSpace(cfg.App.StorageDriver)) {
	case config.StorageDriverMemory:
		st := memory.NewStore()
		c.Store, c.Users, c.Projects, c.Submissions = st, st, st, st
		logger.Printf("Storage | driver=memory")
	default:
		if err := c.openPostgres(ctx); err != nil {
			return nil, err
		}
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	c.Hub = ws.NewHub(logger, c.Metrics)

	return c, nil
}

func (c *Container) openPostgres(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := dbpostgres.Connect(connectCtx, c.Config.Database, c.Logger)
	if err != nil {
		return errors.Wrap(err, "connect postgres")
	}

	if c.Config.App.AutoMigrate {
		if err := (migration.Runner{}).Run(ctx, pool.SQLDB()); err != nil {
			_ = pool.Close()
			return errors.Wrap(err, "migrate")
		}
		c.Logger.Printf("Storage | migrations applied")
	}

	c.Metrics.RegisterPool(func() metrics.PoolStats {
		st := pool.Stat()
		if st == nil {
			return nil
		}
		return st
	})

	c.DB = pool
	c.Store = pool
	c.Users = postgres.NewUserRepository(pool)
	c.Projects = postgres.NewProjectRepository(pool)
	c.Submissions = postgres.NewSubmissionRepository(pool)
	c.Logger.Printf("Storage | driver=postgres host=%s db=%s", c.Config.Database.DBHost, c.Config.Database.DBName)
	return nil
}

// Seed runs the configured HR account seeder and, when demo is set, the demo
// data seeder.
func (c *Container) Seed(ctx context.Context, demo bool) error {
	seeders := seeder.Defaults(c.Config.Seed, c.Config.Auth.BcryptCost, demo)
	if len(seeders) == 0 {
		return nil
	}
	r := seeder.Runner{DB: c.DB, Seeders: seeders}
	return r.Run(ctx, c.Stores())
}

func (c *Container) Stores() seeder.Stores {
	return seeder.Stores{Users: c.Users, Projects: c.Projects, Submissions: c.Submissions}
}

// CachePinger is nil unless Redis is configured.
func (c *Container) CachePinger() pinger {
	if c.Cache == nil || !c.Config.Redis.Enabled() {
		return nil
	}
	return c.Cache
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
