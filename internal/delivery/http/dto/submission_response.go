package dto

import (
	"time"

	"intern-hub/internal/domain/submission"

	"github.com/google/uuid"
)

type SubmissionResponse struct {
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

func NewSubmissionResponse(s submission.Submission) SubmissionResponse {
	return SubmissionResponse{
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
