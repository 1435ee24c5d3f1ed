package seeder

import (
	"context"

	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/submission"
	"intern-hub/internal/domain/user"
)

// Stores are the repositories a seeder writes through.
type Stores struct {
	Users       user.Repository
	Projects    project.Repository
	Submissions submission.Repository
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, st Stores) error
}
