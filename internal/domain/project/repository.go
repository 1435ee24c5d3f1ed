package project

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("project not found")

type Repository interface {
	CreateProject(ctx context.Context, p Project) (Project, error)
	GetProjectByID(ctx context.Context, id uuid.UUID) (Project, error)
	AssignProject(ctx context.Context, projectID uuid.UUID, internID uuid.UUID) (Project, error)
	ListProjects(ctx context.Context, f Filter) ([]Project, error)
}

// Filter narrows ListProjects. Nil pointers mean "any"; results are ordered by creation time.
type Filter struct {
	CreatorID    *uuid.UUID
	AssignedToID *uuid.UUID
	Unassigned   bool
}
