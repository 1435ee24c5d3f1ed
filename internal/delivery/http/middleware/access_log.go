package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// AccessLogMiddleware writes one line per request with the caller's role and
// id once the auth middleware has run. Paths in quiet are not logged.
type AccessLogMiddleware struct {
	logger *log.Logger
	quiet  map[string]bool
}

func NewAccessLogMiddleware(logger *log.Logger, quietPaths ...string) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	quiet := make(map[string]bool, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = true
	}
	return &AccessLogMiddleware{logger: logger, quiet: quiet}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDHeader, rid)

		err := c.Next()

		if m.quiet[c.Path()] {
			return err
		}

		who := "anonymous"
		if sess, ok := SessionFrom(c); ok {
			who = sess.Role.String() + ":" + sess.UserID.String()
		}
		m.logger.Printf(
			"HTTP access | rid=%s ip=%s method=%s path=%s status=%d latency=%s caller=%s bytes=%d",
			rid, c.IP(), c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start), who, len(c.Response().Body()),
		)
		return err
	}
}
