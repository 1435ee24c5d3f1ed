package submission

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("submission not found")
	ErrAlreadyGraded = errors.New("submission already graded")
)

type Repository interface {
	// UpsertSubmission inserts the submission or, when one exists for the same
	// (ProjectID, InternID), replaces its URLs in place. A nil LiveURL keeps the
	// stored one. created reports whether a new row was written. Graded
	// submissions are left untouched and ErrAlreadyGraded is returned.
	UpsertSubmission(ctx context.Context, s Submission) (sub Submission, created bool, err error)
	GetSubmissionByID(ctx context.Context, id uuid.UUID) (Submission, error)
	// GradeSubmission sets the grade; a nil feedback keeps the stored one.
	GradeSubmission(ctx context.Context, id uuid.UUID, grade int, feedback *string) (Submission, error)
	ListSubmissions(ctx context.Context, f Filter) ([]Submission, error)
}

type Filter struct {
	InternID  *uuid.UUID
	ProjectID *uuid.UUID
}
