package v1

import (
	"intern-hub/internal/delivery/http/handler"
	"intern-hub/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Mentor     *handler.MentorHandler
	Project    *handler.ProjectHandler
	Submission *handler.SubmissionHandler
	Dashboard  *handler.DashboardHandler
}

// Register mounts the JSON API. Everything except registration, login and
// refresh sits behind the auth middleware.
func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil || authMw == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterPublicRoutes(r)
	}

	protected := r.Group("", authMw.Middleware())

	if h.Auth != nil {
		h.Auth.RegisterRoutes(protected)
	}
	if h.Mentor != nil {
		h.Mentor.RegisterRoutes(protected)
	}
	if h.Project != nil {
		h.Project.RegisterRoutes(protected)
	}
	if h.Submission != nil {
		h.Submission.RegisterRoutes(protected)
	}
	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(protected)
	}
}
