package handler

import (
	"context"

	"talent-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

type healthResponse struct {
	Status          string `json:"status"`
	DatabaseHealthy bool   `json:"database_healthy"`
	CacheHealthy    bool   `json:"cache_healthy"`
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports degraded rather than failing: the cache is optional
// and the in-memory repository needs no database.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	out := healthResponse{Status: "ok"}
	if h.db != nil {
		out.DatabaseHealthy = h.db.Ping(c.Context()) == nil
	}
	if h.cache != nil {
		out.CacheHealthy = h.cache.Ping(c.Context()) == nil
	}
	if h.db != nil && !out.DatabaseHealthy {
		out.Status = "degraded"
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
