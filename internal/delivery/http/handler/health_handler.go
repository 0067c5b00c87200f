package handler

import (
	"context"
	"time"

	"project-compass/internal/database"
	"project-compass/internal/infrastructure/cache"
	"project-compass/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, redis *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports liveness plus per-dependency status. A degraded cache is
// not an error; the service runs without it.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "unconfigured"
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "down"
	}

	cacheStatus := "ok"
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		cacheStatus = "bypassed"
	}

	status := fiber.StatusOK
	if dbStatus == "down" {
		status = fiber.StatusServiceUnavailable
	}

	return response.Success(c, status, "", map[string]any{
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
