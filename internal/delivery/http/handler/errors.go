package handler

import (
	"errors"

	"intern-hub/internal/delivery/http/middleware"
	"intern-hub/internal/pkg/response"
	"intern-hub/internal/pkg/validate"

	"github.com/gofiber/fiber/v3"
)

// DomainMetrics receives the business counters handlers report.
type DomainMetrics interface {
	UserRegistered(role string)
	MentorAssigned()
	ProjectAssigned()
	Submitted(outcome string)
	Graded(grade int)
}

type noMetrics struct{}

func (noMetrics) UserRegistered(string) {}
func (noMetrics) MentorAssigned()       {}
func (noMetrics) ProjectAssigned()      {}
func (noMetrics) Submitted(string)      {}
func (noMetrics) Graded(int)            {}

func metricsOrNop(m DomainMetrics) DomainMetrics {
	if m == nil {
		return noMetrics{}
	}
	return m
}

// bindBody decodes the JSON body; a malformed body is a 422 like any other
// schema failure.
func bindBody(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.Bind().JSON(out); err != nil {
		return middleware.NewValidationError(&validate.Error{Fields: []validate.FieldError{{Field: "body", Message: "must be a valid JSON object"}}})
	}
	return nil
}

// commonError covers the errors every usecase may return. It yields nil for
// errors the caller has to map itself.
func commonError(err error) *middleware.AppError {
	if appErr := middleware.AccessError(err); appErr != nil {
		return appErr
	}
	var verr *validate.Error
	if errors.As(err, &verr) {
		return middleware.NewValidationError(verr)
	}
	return nil
}

func internalError(err error) *middleware.AppError {
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
