package middleware

import (
	"context"
	"strings"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxSessionKey     = "session"
	SessionCookieName = "session"
)

// Authenticator resolves an access token into a session.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (access.Session, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Middleware rejects requests without a valid session with 401.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !m.resolve(c) {
			return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
		}
		return c.Next()
	}
}

// PageMiddleware sends browsers without a valid session to the login page.
func (m *AuthMiddleware) PageMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !m.resolve(c) {
			return c.Redirect().To("/login")
		}
		return c.Next()
	}
}

// Optional attaches the session when there is one and never rejects.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		m.resolve(c)
		return c.Next()
	}
}

func (m *AuthMiddleware) resolve(c fiber.Ctx) bool {
	token := TokenFromRequest(c)
	if token == "" || m == nil || m.auth == nil {
		return false
	}
	sess, err := m.auth.Authenticate(c.Context(), token)
	if err != nil {
		return false
	}
	c.Locals(CtxSessionKey, sess)
	return true
}

// SessionFrom returns the session attached by the auth middleware.
func SessionFrom(c fiber.Ctx) (access.Session, bool) {
	sess, ok := c.Locals(CtxSessionKey).(access.Session)
	if !ok || !sess.Valid() {
		return access.Session{}, false
	}
	return sess, true
}

// TokenFromRequest prefers the Authorization header over the session cookie.
func TokenFromRequest(c fiber.Ctx) string {
	if tok, ok := BearerToken(c.Get("Authorization")); ok {
		return tok
	}
	return strings.TrimSpace(c.Cookies(SessionCookieName))
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
