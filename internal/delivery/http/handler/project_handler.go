package handler

import (
	"errors"

	"intern-hub/internal/delivery/http/dto"
	"intern-hub/internal/delivery/http/middleware"
	"intern-hub/internal/domain/access"
	"intern-hub/internal/pkg/response"
	"intern-hub/internal/usecase"
	ucproject "intern-hub/internal/usecase/project"

	"github.com/gofiber/fiber/v3"
)

type ProjectHandler struct {
	uc      usecase.ProjectUsecase
	metrics DomainMetrics
}

func NewProjectHandler(uc usecase.ProjectUsecase, metrics DomainMetrics) *ProjectHandler {
	return &ProjectHandler{uc: uc, metrics: metricsOrNop(metrics)}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/projects", middleware.Require(access.OpCreateProject), h.Create)
	r.Post("/projects/assign", middleware.Require(access.OpAssignProject), h.Assign)
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	var req ucproject.CreateInput
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, _ := middleware.SessionFrom(c)
	p, err := h.uc.Create(c.Context(), sess, req)
	if err != nil {
		return mapProjectError(err)
	}
	return response.Created(c, "Project created successfully", dto.NewProjectResponse(p))
}

func (h *ProjectHandler) Assign(c fiber.Ctx) error {
	var req ucproject.AssignInput
	if err := bindBody(c, &req); err != nil {
		return err
	}

	sess, _ := middleware.SessionFrom(c)
	p, err := h.uc.Assign(c.Context(), sess, req)
	if err != nil {
		return mapProjectError(err)
	}

	h.metrics.ProjectAssigned()
	return response.Success(c, fiber.StatusOK, "Project assigned successfully", dto.NewProjectResponse(p))
}

func mapProjectError(err error) error {
	if appErr := commonError(err); appErr != nil {
		return appErr
	}

	switch {
	case errors.Is(err, ucproject.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	case errors.Is(err, ucproject.ErrCreatorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Creator not found", nil, err)
	case errors.Is(err, ucproject.ErrInternNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Intern not found", nil, err)
	default:
		return internalError(err)
	}
}
