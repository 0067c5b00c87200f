package routes

import (
	"log"

	"project-compass/internal/config"
	"project-compass/internal/database"
	"project-compass/internal/delivery/http/handler"
	v1 "project-compass/internal/delivery/http/routes/v1"
	"project-compass/internal/infrastructure/cache"
	"project-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	hub    *ws.Hub
	logger *log.Logger
}

func NewRegistry(cfg config.Config, db database.DB, redis *cache.Redis, hub *ws.Hub, logger *log.Logger) *Registry {
	return &Registry{cfg: cfg, db: db, cache: redis, hub: hub, logger: logger}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(r.db, r.cache).RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.cfg, r.db, r.cache, r.logger)

	wsHandler := ws.NewHandler(r.hub, r.logger)
	app.Get("/ws/activity", wsHandler.HandleActivityWS)
}
