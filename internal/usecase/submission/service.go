package submission

import (
	"context"
	"errors"
	"strings"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/domain/event"
	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/submission"
	"intern-hub/internal/domain/user"
	"intern-hub/internal/pkg/validate"

	"github.com/google/uuid"
)

var (
	ErrProjectNotAssigned = errors.New("project not found or not assigned to you")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyGraded      = errors.New("submission already graded")
	ErrInternal           = errors.New("internal error")
)

type SubmitInput struct {
	RepoURL   string `json:"repoUrl" validate:"required,http_url,max=2048"`
	LiveURL   string `json:"liveUrl" validate:"omitempty,http_url,max=2048"`
	ProjectID string `json:"projectId" validate:"required,uuid"`
	InternID  string `json:"internId" validate:"required,uuid"`
}

type GradeInput struct {
	Grade    *int    `json:"grade" validate:"required,min=0,max=10"`
	Feedback *string `json:"feedback" validate:"omitempty,max=5000"`
}

// Outcome tells a first submission apart from a resubmission.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
)

type Service struct {
	submissions submission.Repository
	projects    project.Repository
	users       user.Repository
	events      event.Publisher
}

func NewService(submissions submission.Repository, projects project.Repository, users user.Repository, events event.Publisher) *Service {
	if events == nil {
		events = event.Discard{}
	}
	return &Service{submissions: submissions, projects: projects, users: users, events: events}
}

// Submit records the intern's work for an assigned project, replacing the
// URLs of an earlier ungraded submission.
func (s *Service) Submit(ctx context.Context, sess access.Session, in SubmitInput) (submission.Submission, Outcome, error) {
	if err := access.Authorize(sess, access.OpSubmitWork, nil); err != nil {
		return submission.Submission{}, "", err
	}
	in.RepoURL = strings.TrimSpace(in.RepoURL)
	in.LiveURL = strings.TrimSpace(in.LiveURL)
	if err := validate.Struct(in); err != nil {
		return submission.Submission{}, "", err
	}
	projectID, err := validate.UUID("projectId", in.ProjectID)
	if err != nil {
		return submission.Submission{}, "", err
	}
	internID, err := validate.UUID("internId", in.InternID)
	if err != nil {
		return submission.Submission{}, "", err
	}

	if err := access.Authorize(sess, access.OpSubmitWork, &access.Resource{OwnerID: &internID}); err != nil {
		return submission.Submission{}, "", err
	}

	p, err := s.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return submission.Submission{}, "", ErrProjectNotAssigned
		}
		return submission.Submission{}, "", ErrInternal
	}
	if !p.IsAssignedTo(internID) {
		return submission.Submission{}, "", ErrProjectNotAssigned
	}

	var live *string
	if in.LiveURL != "" {
		live = &in.LiveURL
	}
	sub, created, err := s.submissions.UpsertSubmission(ctx, submission.Submission{
		RepoURL:   in.RepoURL,
		LiveURL:   live,
		ProjectID: projectID,
		InternID:  internID,
	})
	if err != nil {
		if errors.Is(err, submission.ErrAlreadyGraded) {
			return submission.Submission{}, "", ErrAlreadyGraded
		}
		return submission.Submission{}, "", ErrInternal
	}

	audience := []uuid.UUID{internID, p.CreatorID}
	if mentorID := s.mentorOf(ctx, internID); mentorID != nil {
		audience = append(audience, *mentorID)
	}
	s.events.Publish(event.New(event.WorkSubmitted, sub.ID, audience...))

	if created {
		return sub, OutcomeCreated, nil
	}
	return sub, OutcomeUpdated, nil
}

// Grade sets the grade of a submission. Grading again overwrites it.
// An unknown submission is reported before the body is checked.
func (s *Service) Grade(ctx context.Context, sess access.Session, submissionID string, in GradeInput) (submission.Submission, error) {
	if err := access.Authorize(sess, access.OpGradeSubmission, nil); err != nil {
		return submission.Submission{}, err
	}
	id, err := uuid.Parse(strings.TrimSpace(submissionID))
	if err != nil {
		return submission.Submission{}, ErrSubmissionNotFound
	}
	if _, err := s.submissions.GetSubmissionByID(ctx, id); err != nil {
		if errors.Is(err, submission.ErrNotFound) {
			return submission.Submission{}, ErrSubmissionNotFound
		}
		return submission.Submission{}, ErrInternal
	}
	if err := validate.Struct(in); err != nil {
		return submission.Submission{}, err
	}

	graded, err := s.submissions.GradeSubmission(ctx, id, *in.Grade, in.Feedback)
	if err != nil {
		if errors.Is(err, submission.ErrNotFound) {
			return submission.Submission{}, ErrSubmissionNotFound
		}
		return submission.Submission{}, ErrInternal
	}

	s.events.Publish(event.New(event.SubmissionGraded, graded.ID, graded.InternID))
	return graded, nil
}

func (s *Service) mentorOf(ctx context.Context, internID uuid.UUID) *uuid.UUID {
	if s.users == nil {
		return nil
	}
	u, err := s.users.GetUserByID(ctx, internID)
	if err != nil {
		return nil
	}
	return u.MentorID
}
