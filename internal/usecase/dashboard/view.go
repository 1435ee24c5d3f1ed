package dashboard

import (
	"time"

	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/submission"
	"intern-hub/internal/domain/user"

	"github.com/google/uuid"
)

type UserView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

type ProjectView struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	CreatorID    uuid.UUID  `json:"creatorId"`
	AssignedToID *uuid.UUID `json:"assignedToId"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type SubmissionView struct {
	ID        uuid.UUID `json:"id"`
	RepoURL   string    `json:"repoUrl"`
	LiveURL   *string   `json:"liveUrl"`
	ProjectID uuid.UUID `json:"projectId"`
	InternID  uuid.UUID `json:"internId"`
	Grade     *int      `json:"grade"`
	Feedback  *string   `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Submission is a submission with the records it points at.
type Submission struct {
	SubmissionView
	Intern  *UserView    `json:"intern,omitempty"`
	Project *ProjectView `json:"project,omitempty"`
}

type Intern struct {
	UserView
	Mentor           *UserView     `json:"mentor,omitempty"`
	AssignedProjects []ProjectView `json:"assignedProjects,omitempty"`
	Submissions      []Submission  `json:"submissions,omitempty"`
}

// HasProject reports whether any project is assigned to the intern.
func (i Intern) HasProject() bool {
	return len(i.AssignedProjects) > 0
}

type Mentor struct {
	UserView
	Interns []Intern `json:"interns"`
}

type Project struct {
	ProjectView
	Creator     *UserView    `json:"creator,omitempty"`
	Assignee    *UserView    `json:"assignedTo,omitempty"`
	Submissions []Submission `json:"submissions,omitempty"`
}

type HROverview struct {
	Interns     []Intern     `json:"interns"`
	Mentors     []Mentor     `json:"mentors"`
	Submissions []Submission `json:"submissions"`
}

type HRInterns struct {
	Interns []Intern   `json:"interns"`
	Mentors []UserView `json:"mentors"`
}

type HRMentors struct {
	Mentors []Mentor `json:"mentors"`
}

type HRProjects struct {
	Projects []Project `json:"projects"`
	Interns  []Intern  `json:"interns"`
}

type MentorOverview struct {
	Interns  []Intern      `json:"interns"`
	Projects []ProjectView `json:"projects"`
}

type MentorInterns struct {
	Interns           []Intern      `json:"interns"`
	AvailableProjects []ProjectView `json:"availableProjects"`
}

// InternHome is the intern's single-project page. Every field may be nil.
type InternHome struct {
	Project    *ProjectView    `json:"project"`
	Mentor     *UserView       `json:"mentor"`
	Submission *SubmissionView `json:"submission"`
}

func userView(u user.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func projectView(p project.Project) ProjectView {
	return ProjectView{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		CreatorID:    p.CreatorID,
		AssignedToID: p.AssignedToID,
		CreatedAt:    p.CreatedAt,
	}
}

func submissionView(s submission.Submission) SubmissionView {
	return SubmissionView{
		ID:        s.ID,
		RepoURL:   s.RepoURL,
		LiveURL:   s.LiveURL,
		ProjectID: s.ProjectID,
		InternID:  s.InternID,
		Grade:     s.Grade,
		Feedback:  s.Feedback,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
