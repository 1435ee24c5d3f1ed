package handler

import (
	"errors"

	"intern-hub/internal/delivery/http/dto"
	"intern-hub/internal/delivery/http/middleware"
	"intern-hub/internal/domain/access"
	"intern-hub/internal/pkg/response"
	"intern-hub/internal/usecase"
	ucmentorship "intern-hub/internal/usecase/mentorship"

	"github.com/gofiber/fiber/v3"
)

type MentorHandler struct {
	uc      usecase.MentorshipUsecase
	metrics DomainMetrics
}

func NewMentorHandler(uc usecase.MentorshipUsecase, metrics DomainMetrics) *MentorHandler {
	return &MentorHandler{uc: uc, metrics: metricsOrNop(metrics)}
}

func (h *MentorHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/mentors/assign", middleware.Require(access.OpAssignMentor), h.Assign)
}

func (h *MentorHandler) Assign(c fiber.Ctx) error {
	var req ucmentorship.AssignMentorInput
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, _ := middleware.SessionFrom(c)
	intern, err := h.uc.AssignMentor(c.Context(), sess, req)
	if err != nil {
		return mapMentorshipError(err)
	}

	h.metrics.MentorAssigned()
	return response.Success(c, fiber.StatusOK, "Mentor assigned successfully", dto.NewUserResponse(intern))
}

func mapMentorshipError(err error) error {
	if appErr := commonError(err); appErr != nil {
		return appErr
	}

	switch {
	case errors.Is(err, ucmentorship.ErrMentorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Mentor not found", nil, err)
	case errors.Is(err, ucmentorship.ErrInternNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Intern not found", nil, err)
	default:
		return internalError(err)
	}
}
