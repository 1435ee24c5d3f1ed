package usecase

import (
	"context"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/domain/event"
	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/submission"
	"intern-hub/internal/domain/user"
	ucsubmission "intern-hub/internal/usecase/submission"
)

type SubmissionUsecase interface {
	Submit(ctx context.Context, sess access.Session, in ucsubmission.SubmitInput) (submission.Submission, ucsubmission.Outcome, error)
	Grade(ctx context.Context, sess access.Session, submissionID string, in ucsubmission.GradeInput) (submission.Submission, error)
}

func NewSubmissionUsecase(submissions submission.Repository, projects project.Repository, users user.Repository, events event.Publisher) SubmissionUsecase {
	return ucsubmission.NewService(submissions, projects, users, events)
}
