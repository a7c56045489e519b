package routes

import (
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health   *handler.HealthHandler
	match    *handler.MatchHandler
	bulk     *handler.BulkMatchHandler
	feedback *handler.FeedbackHandler
	stats    *handler.StatsHandler
	wsh      *ws.Handler
}

func NewRegistry(
	health *handler.HealthHandler,
	match *handler.MatchHandler,
	bulk *handler.BulkMatchHandler,
	feedback *handler.FeedbackHandler,
	stats *handler.StatsHandler,
	wsh *ws.Handler,
) *Registry {
	return &Registry{
		health:   health,
		match:    match,
		bulk:     bulk,
		feedback: feedback,
		stats:    stats,
		wsh:      wsh,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	r.match.RegisterRoutes(v1)
	r.bulk.RegisterRoutes(v1)
	r.feedback.RegisterRoutes(v1)
	r.stats.RegisterRoutes(v1)

	if r.wsh != nil {
		app.Get("/ws/matches", r.wsh.HandleMatchesWS)
	}
}
