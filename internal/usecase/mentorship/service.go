package mentorship

import (
	"context"
	"errors"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/domain/event"
	"intern-hub/internal/domain/user"
	"intern-hub/internal/pkg/validate"
)

var (
	ErrMentorNotFound = errors.New("mentor not found")
	ErrInternNotFound = errors.New("intern not found")
	ErrInternal       = errors.New("internal error")
)

type AssignMentorInput struct {
	MentorID string `json:"mentorId" validate:"required,uuid"`
	InternID string `json:"internId" validate:"required,uuid"`
}

type Service struct {
	users  user.Repository
	events event.Publisher
}

func NewService(users user.Repository, events event.Publisher) *Service {
	if events == nil {
		events = event.Discard{}
	}
	return &Service{users: users, events: events}
}

// AssignMentor points the intern at the mentor. Repeating it is harmless.
func (s *Service) AssignMentor(ctx context.Context, sess access.Session, in AssignMentorInput) (user.User, error) {
	if err := access.Authorize(sess, access.OpAssignMentor, nil); err != nil {
		return user.User{}, err
	}
	if err := validate.Struct(in); err != nil {
		return user.User{}, err
	}
	mentorID, err := validate.UUID("mentorId", in.MentorID)
	if err != nil {
		return user.User{}, err
	}
	internID, err := validate.UUID("internId", in.InternID)
	if err != nil {
		return user.User{}, err
	}

	mentor, err := s.users.FindByIDAndRole(ctx, mentorID, user.RoleMentor)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrMentorNotFound
		}
		return user.User{}, ErrInternal
	}

	// The role filter lives in the update itself.
	intern, err := s.users.SetMentor(ctx, internID, mentor.ID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInternNotFound
		}
		return user.User{}, ErrInternal
	}

	s.events.Publish(event.New(event.MentorAssigned, intern.ID, intern.ID, mentor.ID))
	return intern.Sanitized(), nil
}
