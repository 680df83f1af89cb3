package routes

import (
	"github.com/gofiber/fiber/v3"

	"talent-track/internal/delivery/http/handler"
	v1 "talent-track/internal/delivery/http/routes/v1"
	"talent-track/internal/ws"
)

type Registry struct {
	health *handler.HealthHandler
	ws     *ws.Handler
	v1     v1.Deps
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, deps v1.Deps) *Registry {
	return &Registry{health: health, ws: wsHandler, v1: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws != nil {
		app.Get("/ws", r.ws.HandleWS)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1)
}
