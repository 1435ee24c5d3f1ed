package usecase

import (
	"context"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/domain/event"
	"intern-hub/internal/domain/user"
	ucmentorship "intern-hub/internal/usecase/mentorship"
)

type MentorshipUsecase interface {
	AssignMentor(ctx context.Context, sess access.Session, in ucmentorship.AssignMentorInput) (user.User, error)
}

func NewMentorshipUsecase(users user.Repository, events event.Publisher) MentorshipUsecase {
	return ucmentorship.NewService(users, events)
}
