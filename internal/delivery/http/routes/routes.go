package routes

import (
	"intern-hub/internal/delivery/http/handler"
	"intern-hub/internal/delivery/http/middleware"
	v1 "intern-hub/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	AuthMiddleware *middleware.AuthMiddleware

	Health *handler.HealthHandler
	Pages  *handler.PageHandler
	API    v1.Handlers

	// Extra mounts handlers that live outside the API tree, like /ws and /metrics.
	Extra map[string]fiber.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	r.registerHealth(app)
	r.registerExtra(app)
	r.registerAPI(app)
	r.registerPages(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerExtra(app *fiber.App) {
	for path, h := range r.Extra {
		if h != nil {
			app.Get(path, h)
		}
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.API, r.AuthMiddleware)
}

func (r *Registry) registerPages(app *fiber.App) {
	if r.Pages != nil {
		r.Pages.RegisterRoutes(app, r.AuthMiddleware)
	}
}
