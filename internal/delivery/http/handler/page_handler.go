package handler

import (
	"context"

	"intern-hub/internal/delivery/http/dto"
	"intern-hub/internal/delivery/http/middleware"
	"intern-hub/internal/domain/access"
	"intern-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const pageLayout = "layouts/main"

// PageHandler renders the server-side HTML pages.
type PageHandler struct {
	auth    usecase.AuthUsecase
	dash    usecase.DashboardUsecase
	appName string
}

func NewPageHandler(auth usecase.AuthUsecase, dash usecase.DashboardUsecase, appName string) *PageHandler {
	return &PageHandler{auth: auth, dash: dash, appName: appName}
}

func (h *PageHandler) RegisterRoutes(r fiber.Router, authMw *middleware.AuthMiddleware) {
	if r == nil || authMw == nil {
		return
	}

	r.Get("/", authMw.Optional(), h.Home)
	r.Get("/login", authMw.Optional(), h.guest("login", "Sign in"))
	r.Get("/register", authMw.Optional(), h.guest("register", "Create account"))
	r.Get("/logout", authMw.Optional(), h.Logout)

	d := r.Group("/dashboard", authMw.PageMiddleware())
	d.Get("", h.Dashboard)
	d.Get("/hr", middleware.RequirePage(access.OpViewHRDashboard), page(h, "dashboard/hr", "HR overview", h.dash.HROverview))
	d.Get("/hr/interns", middleware.RequirePage(access.OpViewHRDashboard), page(h, "dashboard/hr_interns", "Interns", h.dash.HRInterns))
	d.Get("/hr/mentors", middleware.RequirePage(access.OpViewHRDashboard), page(h, "dashboard/hr_mentors", "Mentors", h.dash.HRMentors))
	d.Get("/hr/projects", middleware.RequirePage(access.OpViewHRDashboard), page(h, "dashboard/hr_projects", "Projects", h.dash.HRProjects))
	d.Get("/mentor", middleware.RequirePage(access.OpViewMentorDashboard), page(h, "dashboard/mentor", "Mentor overview", h.dash.MentorOverview))
	d.Get("/mentor/interns", middleware.RequirePage(access.OpViewMentorDashboard), page(h, "dashboard/mentor_interns", "My interns", h.dash.MentorInterns))
	d.Get("/intern", middleware.RequirePage(access.OpViewInternDashboard), page(h, "dashboard/intern", "My project", h.dash.Intern))
}

func (h *PageHandler) Home(c fiber.Ctx) error {
	if sess, ok := middleware.SessionFrom(c); ok {
		return c.Redirect().To(access.DashboardPath(sess.Role))
	}
	return c.Render("index", fiber.Map{"AppName": h.appName, "Title": h.appName}, pageLayout)
}

// guest renders a page meant for signed-out visitors.
func (h *PageHandler) guest(name, title string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if sess, ok := middleware.SessionFrom(c); ok {
			return c.Redirect().To(access.DashboardPath(sess.Role))
		}
		return c.Render(name, fiber.Map{"AppName": h.appName, "Title": title}, pageLayout)
	}
}

func (h *PageHandler) Logout(c fiber.Ctx) error {
	if sess, ok := middleware.SessionFrom(c); ok {
		_ = h.auth.Logout(c.Context(), sess)
	}
	c.ClearCookie(middleware.SessionCookieName)
	return c.Redirect().To("/login")
}

func (h *PageHandler) Dashboard(c fiber.Ctx) error {
	sess, _ := middleware.SessionFrom(c)
	return c.Redirect().To(access.DashboardPath(sess.Role))
}

func page[T any](h *PageHandler, name, title string, load func(context.Context, access.Session) (T, error)) fiber.Handler {
	return func(c fiber.Ctx) error {
		sess, _ := middleware.SessionFrom(c)

		me, err := h.auth.Me(c.Context(), sess)
		if err != nil {
			c.ClearCookie(middleware.SessionCookieName)
			return c.Redirect().To("/login")
		}

		data, err := load(c.Context(), sess)
		if err != nil {
			if appErr := commonError(err); appErr != nil {
				return c.Redirect().To(access.DashboardPath(sess.Role))
			}
			return internalError(err)
		}

		return c.Render(name, fiber.Map{
			"AppName": h.appName,
			"Title":   title,
			"User":    dto.NewUserResponse(me),
			"Data":    data,
		}, pageLayout)
	}
}
