package middleware

import (
	"errors"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Require checks the caller's role for op before the handler parses anything.
func Require(op access.Operation) fiber.Handler {
	return func(c fiber.Ctx) error {
		sess, _ := SessionFrom(c)
		if err := access.Authorize(sess, op, nil); err != nil {
			return AccessError(err)
		}
		return c.Next()
	}
}

// RequirePage redirects callers holding another role to their own dashboard.
func RequirePage(op access.Operation) fiber.Handler {
	return func(c fiber.Ctx) error {
		sess, ok := SessionFrom(c)
		if !ok {
			return c.Redirect().To("/login")
		}
		if err := access.Authorize(sess, op, nil); err != nil {
			return c.Redirect().To(access.DashboardPath(sess.Role))
		}
		return c.Next()
	}
}

// AccessError maps policy errors to 401/403, keeping the specific message.
func AccessError(err error) *AppError {
	switch {
	case errors.Is(err, access.ErrUnauthenticated):
		return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
	case errors.Is(err, access.ErrNotYourIntern):
		return NewAppError(fiber.StatusForbidden, "You can only assign projects to your interns", nil, err)
	case errors.Is(err, access.ErrNotYourSubmission):
		return NewAppError(fiber.StatusForbidden, "You can only submit your own work", nil, err)
	case errors.Is(err, access.ErrNotYourProject):
		return NewAppError(fiber.StatusForbidden, "You can only create projects as yourself", nil, err)
	case errors.Is(err, access.ErrForbidden):
		return NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	default:
		return nil
	}
}
