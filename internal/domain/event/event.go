// Package event describes the "data changed" notices sent to open dashboards.
package event

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	UserRegistered   Kind = "user.registered"
	MentorAssigned   Kind = "mentor.assigned"
	ProjectCreated   Kind = "project.created"
	ProjectAssigned  Kind = "project.assigned"
	WorkSubmitted    Kind = "submission.submitted"
	SubmissionGraded Kind = "submission.graded"
)

// Event is delivered to every HR session and to the users in Audience.
type Event struct {
	Kind      Kind        `json:"kind"`
	SubjectID uuid.UUID   `json:"subjectId"`
	At        time.Time   `json:"at"`
	Audience  []uuid.UUID `json:"-"`
}

func New(kind Kind, subject uuid.UUID, audience ...uuid.UUID) Event {
	return Event{Kind: kind, SubjectID: subject, At: time.Now().UTC(), Audience: audience}
}

// Concerns reports whether id is part of the audience.
func (e Event) Concerns(id uuid.UUID) bool {
	for _, a := range e.Audience {
		if a == id {
			return true
		}
	}
	return false
}

type Publisher interface {
	Publish(ev Event)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(Event) {}
