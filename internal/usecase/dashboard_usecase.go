package usecase

import (
	"context"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/submission"
	"intern-hub/internal/domain/user"
	ucdashboard "intern-hub/internal/usecase/dashboard"
)

type DashboardUsecase interface {
	HROverview(ctx context.Context, sess access.Session) (ucdashboard.HROverview, error)
	HRInterns(ctx context.Context, sess access.Session) (ucdashboard.HRInterns, error)
	HRMentors(ctx context.Context, sess access.Session) (ucdashboard.HRMentors, error)
	HRProjects(ctx context.Context, sess access.Session) (ucdashboard.HRProjects, error)
	MentorOverview(ctx context.Context, sess access.Session) (ucdashboard.MentorOverview, error)
	MentorInterns(ctx context.Context, sess access.Session) (ucdashboard.MentorInterns, error)
	Intern(ctx context.Context, sess access.Session) (ucdashboard.InternHome, error)
}

func NewDashboardUsecase(users user.Repository, projects project.Repository, submissions submission.Repository) DashboardUsecase {
	return ucdashboard.NewService(users, projects, submissions)
}
