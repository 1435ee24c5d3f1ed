package project

import (
	"context"
	"errors"
	"strings"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/domain/event"
	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/user"
	"intern-hub/internal/pkg/validate"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInternNotFound  = errors.New("intern not found")
	ErrCreatorNotFound = errors.New("creator not found")
	ErrInternal        = errors.New("internal error")
)

type CreateInput struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required,min=10,max=5000"`
	// CreatorID defaults to the caller.
	CreatorID string `json:"creatorId" validate:"omitempty,uuid"`
}

type AssignInput struct {
	ProjectID string `json:"projectId" validate:"required,uuid"`
	InternID  string `json:"internId" validate:"required,uuid"`
}

type Service struct {
	projects project.Repository
	users    user.Repository
	events   event.Publisher
}

func NewService(projects project.Repository, users user.Repository, events event.Publisher) *Service {
	if events == nil {
		events = event.Discard{}
	}
	return &Service{projects: projects, users: users, events: events}
}

func (s *Service) Create(ctx context.Context, sess access.Session, in CreateInput) (project.Project, error) {
	if err := access.Authorize(sess, access.OpCreateProject, nil); err != nil {
		return project.Project{}, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := validate.Struct(in); err != nil {
		return project.Project{}, err
	}

	creatorID := sess.UserID
	if in.CreatorID != "" {
		id, err := validate.UUID("creatorId", in.CreatorID)
		if err != nil {
			return project.Project{}, err
		}
		creatorID = id
	}
	if err := access.Authorize(sess, access.OpCreateProject, &access.Resource{OwnerID: &creatorID}); err != nil {
		return project.Project{}, err
	}
	if creatorID != sess.UserID {
		if err := s.requireCreator(ctx, creatorID); err != nil {
			return project.Project{}, err
		}
	}

	p, err := s.projects.CreateProject(ctx, project.Project{
		Title:       in.Title,
		Description: in.Description,
		CreatorID:   creatorID,
	})
	if err != nil {
		return project.Project{}, ErrInternal
	}

	s.events.Publish(event.New(event.ProjectCreated, p.ID, creatorID))
	return p, nil
}

func (s *Service) Assign(ctx context.Context, sess access.Session, in AssignInput) (project.Project, error) {
	if err := access.Authorize(sess, access.OpAssignProject, nil); err != nil {
		return project.Project{}, err
	}
	if err := validate.Struct(in); err != nil {
		return project.Project{}, err
	}
	projectID, err := validate.UUID("projectId", in.ProjectID)
	if err != nil {
		return project.Project{}, err
	}
	internID, err := validate.UUID("internId", in.InternID)
	if err != nil {
		return project.Project{}, err
	}

	p, err := s.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return project.Project{}, ErrProjectNotFound
		}
		return project.Project{}, ErrInternal
	}
	intern, err := s.users.FindByIDAndRole(ctx, internID, user.RoleIntern)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return project.Project{}, ErrInternNotFound
		}
		return project.Project{}, ErrInternal
	}

	if err := access.Authorize(sess, access.OpAssignProject, &access.Resource{InternMentorID: intern.MentorID}); err != nil {
		return project.Project{}, err
	}

	assigned, err := s.projects.AssignProject(ctx, p.ID, intern.ID)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return project.Project{}, ErrProjectNotFound
		}
		return project.Project{}, ErrInternal
	}

	audience := []uuid.UUID{intern.ID, assigned.CreatorID}
	if intern.MentorID != nil {
		audience = append(audience, *intern.MentorID)
	}
	s.events.Publish(event.New(event.ProjectAssigned, assigned.ID, audience...))
	return assigned, nil
}

// requireCreator checks that id names a MENTOR or HR user.
func (s *Service) requireCreator(ctx context.Context, id uuid.UUID) error {
	for _, role := range []user.Role{user.RoleMentor, user.RoleHR} {
		_, err := s.users.FindByIDAndRole(ctx, id, role)
		if err == nil {
			return nil
		}
		if !errors.Is(err, user.ErrNotFound) {
			return ErrInternal
		}
	}
	return ErrCreatorNotFound
}
