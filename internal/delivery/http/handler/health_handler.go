package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"talent-track/internal/database"
	"talent-track/internal/infrastructure/cache"
	"talent-track/internal/pkg/response"
)

type HealthHandler struct {
	db    database.DB
	redis *cache.Redis
}

func NewHealthHandler(db database.DB, redis *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "not configured"
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "unreachable"
	}

	redisStatus := "ok"
	if h.redis == nil {
		redisStatus = "not configured"
	} else if err := h.redis.Ping(ctx); err != nil {
		redisStatus = "unreachable"
	}

	status := fiber.StatusOK
	if dbStatus == "unreachable" {
		status = fiber.StatusServiceUnavailable
	}

	return response.Success(c, status, "", fiber.Map{
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
