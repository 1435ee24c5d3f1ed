package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
)

// HTTPObserver records one finished request.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// Metrics labels requests by route pattern, not raw path, to bound cardinality.
func Metrics(obs HTTPObserver) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if obs == nil {
			return err
		}

		// After Next the context points at the last matched route.
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		obs.ObserveHTTP(c.Method(), route, c.Response().StatusCode(), time.Since(start))
		return err
	}
}
