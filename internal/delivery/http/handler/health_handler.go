package handler

import (
	"context"
	"time"

	"intern-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports store and cache reachability. The cache is optional
// and never fails the check.
type HealthHandler struct {
	store Pinger
	cache Pinger
}

func NewHealthHandler(store, cache Pinger) *HealthHandler {
	return &HealthHandler{store: store, cache: cache}
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

	status := fiber.StatusOK
	out := fiber.Map{"store": "up", "cache": "disabled"}

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			status = fiber.StatusServiceUnavailable
			out["store"] = "down"
		}
	}
	if h.cache != nil {
		out["cache"] = "up"
		if err := h.cache.Ping(ctx); err != nil {
			out["cache"] = "down"
		}
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "Service unavailable", out)
	}
	return response.Success(c, status, response.MessageOK, out)
}
