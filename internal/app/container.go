package app

import (
	"context"
	"log"
	"time"

	"project-compass/internal/config"
	"project-compass/internal/database"
	"project-compass/internal/database/migration"
	dbpostgres "project-compass/internal/database/postgres"
	"project-compass/internal/database/seeder"
	"project-compass/internal/infrastructure/cache"
	"project-compass/internal/ws"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

// NewContainer connects to Postgres, applies pending migrations, runs the
// seeders, and probes Redis. Failures past the database are not fatal; the
// cache wrapper degrades to a bypass on its own.
func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.Database.RunSeeders {
		runner := seeder.Runner{Seeders: seeder.Defaults()}
		if err := runner.Run(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(logger),
		Hub:    hub,
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
