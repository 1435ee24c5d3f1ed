package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"intern-hub/internal/config"
	"intern-hub/internal/delivery/http/handler"
	"intern-hub/internal/delivery/http/middleware"
	"intern-hub/internal/delivery/http/routes"
	v1 "intern-hub/internal/delivery/http/routes/v1"
	"intern-hub/internal/delivery/http/views"
	"intern-hub/internal/usecase"
	"intern-hub/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/template/html/v2"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New wires the HTTP surface on top of an already built container.
func New(c *Container) *App {
	cfg := c.Config

	engine := html.NewFileSystem(http.FS(views.FS), ".html")
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
		Views:   engine,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the app and starts the websocket hub.
// The returned cleanup stops the hub and closes the stores.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := c.Seed(ctx, false); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(c.Logger)
	accessLog := middleware.NewAccessLogMiddleware(c.Logger, "/health", "/metrics")

	app.Use(accessLog.Middleware())
	app.Use(middleware.Metrics(c.Metrics))
	app.Use(errMw.Middleware())
	app.Use(cors.New(corsConfig(c.Config.App.CORSOrigins)))
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		return cors.Config{}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: !containsWildcard(origins),
	}
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	cfg := c.Config

	authUC := usecase.NewAuthUsecase(c.Users, c.JWT, c.Cache, c.Hub, cfg.Auth.BcryptCost)
	mentorshipUC := usecase.NewMentorshipUsecase(c.Users, c.Hub)
	projectUC := usecase.NewProjectUsecase(c.Projects, c.Users, c.Hub)
	submissionUC := usecase.NewSubmissionUsecase(c.Submissions, c.Projects, c.Users, c.Hub)
	dashboardUC := usecase.NewDashboardUsecase(c.Users, c.Projects, c.Submissions)

	authMw := middleware.NewAuthMiddleware(authUC)
	wsHandler := ws.NewHandler(c.Hub, c.Logger, middleware.SessionFrom, cfg.App.CORSOrigins)

	registry := &routes.Registry{
		AuthMiddleware: authMw,
		Health:         handler.NewHealthHandler(c.Store, c.CachePinger()),
		Pages:          handler.NewPageHandler(authUC, dashboardUC, cfg.App.AppName),
		API: v1.Handlers{
			Auth:       handler.NewAuthHandler(authUC, c.Metrics, cfg.Auth.CookieSecure, cfg.JWT.AccessExpiresIn),
			Mentor:     handler.NewMentorHandler(mentorshipUC, c.Metrics),
			Project:    handler.NewProjectHandler(projectUC, c.Metrics),
			Submission: handler.NewSubmissionHandler(submissionUC, c.Metrics),
			Dashboard:  handler.NewDashboardHandler(dashboardUC),
		},
		Extra: map[string]fiber.Handler{
			"/metrics": adaptor.HTTPHandler(c.Metrics.Handler()),
		},
	}
	registry.Register(app)

	app.Get("/ws", authMw.Optional(), wsHandler.Serve)
}

// ShutdownTimeout bounds graceful shutdown in cmd/server.
const ShutdownTimeout = 10 * time.Second

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
