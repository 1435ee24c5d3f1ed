package submission

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinGrade = 0
	MaxGrade = 10
)

type Submission struct {
	ID        uuid.UUID
	RepoURL   string
	LiveURL   *string
	ProjectID uuid.UUID
	InternID  uuid.UUID
	Grade     *int
	Feedback  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Submission) Graded() bool {
	return s.Grade != nil
}
