package usecase

import (
	"context"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/domain/event"
	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/user"
	ucproject "intern-hub/internal/usecase/project"
)

type ProjectUsecase interface {
	Create(ctx context.Context, sess access.Session, in ucproject.CreateInput) (project.Project, error)
	Assign(ctx context.Context, sess access.Session, in ucproject.AssignInput) (project.Project, error)
}

func NewProjectUsecase(projects project.Repository, users user.Repository, events event.Publisher) ProjectUsecase {
	return ucproject.NewService(projects, users, events)
}
