package handler

import (
	"errors"

	"intern-hub/internal/delivery/http/dto"
	"intern-hub/internal/delivery/http/middleware"
	"intern-hub/internal/domain/access"
	"intern-hub/internal/pkg/response"
	"intern-hub/internal/usecase"
	ucsubmission "intern-hub/internal/usecase/submission"

	"github.com/gofiber/fiber/v3"
)

type SubmissionHandler struct {
	uc      usecase.SubmissionUsecase
	metrics DomainMetrics
}

func NewSubmissionHandler(uc usecase.SubmissionUsecase, metrics DomainMetrics) *SubmissionHandler {
	return &SubmissionHandler{uc: uc, metrics: metricsOrNop(metrics)}
}

func (h *SubmissionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/submissions", middleware.Require(access.OpSubmitWork), h.Submit)
	r.Post("/submissions/:id/grade", middleware.Require(access.OpGradeSubmission), h.Grade)
}

func (h *SubmissionHandler) Submit(c fiber.Ctx) error {
	var req ucsubmission.SubmitInput
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, _ := middleware.SessionFrom(c)
	sub, outcome, err := h.uc.Submit(c.Context(), sess, req)
	if err != nil {
		if errors.Is(err, ucsubmission.ErrAlreadyGraded) {
			h.metrics.Submitted("rejected_graded")
		}
		return mapSubmissionError(err)
	}

	h.metrics.Submitted(string(outcome))
	return response.Success(c, fiber.StatusOK, "Submission successful", dto.NewSubmissionResponse(sub))
}

func (h *SubmissionHandler) Grade(c fiber.Ctx) error {
	var req ucsubmission.GradeInput
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, _ := middleware.SessionFrom(c)
	sub, err := h.uc.Grade(c.Context(), sess, c.Params("id"), req)
	if err != nil {
		return mapSubmissionError(err)
	}

	if sub.Grade != nil {
		h.metrics.Graded(*sub.Grade)
	}
	return response.Success(c, fiber.StatusOK, "Submission graded successfully", dto.NewSubmissionResponse(sub))
}

func mapSubmissionError(err error) error {
	if appErr := commonError(err); appErr != nil {
		return appErr
	}

	switch {
	case errors.Is(err, ucsubmission.ErrProjectNotAssigned):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found or not assigned to you", nil, err)
	case errors.Is(err, ucsubmission.ErrSubmissionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Submission not found", nil, err)
	case errors.Is(err, ucsubmission.ErrAlreadyGraded):
		return middleware.NewAppError(fiber.StatusConflict, "Submission has already been graded", nil, err)
	default:
		return internalError(err)
	}
}
