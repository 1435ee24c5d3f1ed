package postgres

import (
	"context"
	"fmt"
	"strings"

	"intern-hub/internal/database"
	dbpostgres "intern-hub/internal/database/postgres"
	"intern-hub/internal/domain/submission"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const submissionColumns = `id, repo_url, live_url, project_id, intern_id, grade, feedback, created_at, updated_at`

type SubmissionRepository struct {
	db database.DB
}

func NewSubmissionRepository(db database.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

var _ submission.Repository = (*SubmissionRepository)(nil)

func (r *SubmissionRepository) UpsertSubmission(ctx context.Context, s submission.Submission) (submission.Submission, bool, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO submissions (repo_url, live_url, project_id, intern_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (project_id, intern_id) DO UPDATE
		 SET repo_url = EXCLUDED.repo_url,
		     live_url = COALESCE(EXCLUDED.live_url, submissions.live_url),
		     updated_at = now()
		 WHERE submissions.grade IS NULL
		 RETURNING `+submissionColumns+`, (xmax = 0) AS inserted`,
		s.RepoURL, s.LiveURL, s.ProjectID, s.InternID,
	)

	var (
		out      submission.Submission
		inserted bool
	)
	err := row.Scan(
		&out.ID, &out.RepoURL, &out.LiveURL, &out.ProjectID, &out.InternID,
		&out.Grade, &out.Feedback, &out.CreatedAt, &out.UpdatedAt, &inserted,
	)
	if err != nil {
		// The conflict branch filtered the row out: it is graded.
		if dbpostgres.IsNoRows(err) {
			return submission.Submission{}, false, submission.ErrAlreadyGraded
		}
		return submission.Submission{}, false, errors.Wrap(err, "upsert submission")
	}
	return out, inserted, nil
}

func (r *SubmissionRepository) GetSubmissionByID(ctx context.Context, id uuid.UUID) (submission.Submission, error) {
	row := r.db.QueryRow(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	return oneSubmission(scanSubmission(row))
}

func (r *SubmissionRepository) GradeSubmission(ctx context.Context, id uuid.UUID, grade int, feedback *string) (submission.Submission, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE submissions
		 SET grade = $2, feedback = COALESCE($3, feedback), updated_at = now()
		 WHERE id = $1
		 RETURNING `+submissionColumns,
		id, grade, feedback,
	)
	return oneSubmission(scanSubmission(row))
}

func (r *SubmissionRepository) ListSubmissions(ctx context.Context, f submission.Filter) ([]submission.Submission, error) {
	var (
		conds []string
		args  []any
	)
	if f.InternID != nil {
		args = append(args, *f.InternID)
		conds = append(conds, fmt.Sprintf("intern_id = $%d", len(args)))
	}
	if f.ProjectID != nil {
		args = append(args, *f.ProjectID)
		conds = append(conds, fmt.Sprintf("project_id = $%d", len(args)))
	}

	q := `SELECT ` + submissionColumns + ` FROM submissions`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list submissions")
	}
	defer rows.Close()

	out := make([]submission.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan submission")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list submissions")
	}
	return out, nil
}

func scanSubmission(row database.Row) (submission.Submission, error) {
	var s submission.Submission
	err := row.Scan(
		&s.ID, &s.RepoURL, &s.LiveURL, &s.ProjectID, &s.InternID,
		&s.Grade, &s.Feedback, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return submission.Submission{}, err
	}
	return s, nil
}

func oneSubmission(s submission.Submission, err error) (submission.Submission, error) {
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return submission.Submission{}, submission.ErrNotFound
		}
		return submission.Submission{}, errors.Wrap(err, "query submission")
	}
	return s, nil
}
