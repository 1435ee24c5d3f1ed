package handler

import (
	"context"

	"intern-hub/internal/delivery/http/middleware"
	"intern-hub/internal/domain/access"
	"intern-hub/internal/pkg/response"
	"intern-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// DashboardHandler serves the dashboard views as JSON.
type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	hr := r.Group("/dashboard/hr", middleware.Require(access.OpViewHRDashboard))
	hr.Get("", view(h.uc.HROverview))
	hr.Get("/interns", view(h.uc.HRInterns))
	hr.Get("/mentors", view(h.uc.HRMentors))
	hr.Get("/projects", view(h.uc.HRProjects))

	mentor := r.Group("/dashboard/mentor", middleware.Require(access.OpViewMentorDashboard))
	mentor.Get("", view(h.uc.MentorOverview))
	mentor.Get("/interns", view(h.uc.MentorInterns))

	r.Get("/dashboard/intern", middleware.Require(access.OpViewInternDashboard), view(h.uc.Intern))
}

func view[T any](load func(context.Context, access.Session) (T, error)) fiber.Handler {
	return func(c fiber.Ctx) error {
		sess, _ := middleware.SessionFrom(c)
		out, err := load(c.Context(), sess)
		if err != nil {
			if appErr := commonError(err); appErr != nil {
				return appErr
			}
			return internalError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, out)
	}
}
