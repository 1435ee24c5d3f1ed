package postgres

import (
	"context"
	"fmt"
	"strings"

	"intern-hub/internal/database"
	dbpostgres "intern-hub/internal/database/postgres"
	"intern-hub/internal/domain/project"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const projectColumns = `id, title, description, creator_id, assigned_to_id, created_at, updated_at`

type ProjectRepository struct {
	db database.DB
}

func NewProjectRepository(db database.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

var _ project.Repository = (*ProjectRepository)(nil)

func (r *ProjectRepository) CreateProject(ctx context.Context, p project.Project) (project.Project, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO projects (title, description, creator_id, assigned_to_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+projectColumns,
		p.Title, p.Description, p.CreatorID, p.AssignedToID,
	)
	out, err := scanProject(row)
	if err != nil {
		return project.Project{}, errors.Wrap(err, "insert project")
	}
	return out, nil
}

func (r *ProjectRepository) GetProjectByID(ctx context.Context, id uuid.UUID) (project.Project, error) {
	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return oneProject(scanProject(row))
}

func (r *ProjectRepository) AssignProject(ctx context.Context, projectID uuid.UUID, internID uuid.UUID) (project.Project, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE projects
		 SET assigned_to_id = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+projectColumns,
		projectID, internID,
	)
	return oneProject(scanProject(row))
}

func (r *ProjectRepository) ListProjects(ctx context.Context, f project.Filter) ([]project.Project, error) {
	var (
		conds []string
		args  []any
	)
	if f.CreatorID != nil {
		args = append(args, *f.CreatorID)
		conds = append(conds, fmt.Sprintf("creator_id = $%d", len(args)))
	}
	if f.AssignedToID != nil {
		args = append(args, *f.AssignedToID)
		conds = append(conds, fmt.Sprintf("assigned_to_id = $%d", len(args)))
	}
	if f.Unassigned {
		conds = append(conds, "assigned_to_id IS NULL")
	}

	q := `SELECT ` + projectColumns + ` FROM projects`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list projects")
	}
	defer rows.Close()

	out := make([]project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan project")
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list projects")
	}
	return out, nil
}

func scanProject(row database.Row) (project.Project, error) {
	var p project.Project
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.CreatorID, &p.AssignedToID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return project.Project{}, err
	}
	return p, nil
}

func oneProject(p project.Project, err error) (project.Project, error) {
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, errors.Wrap(err, "query project")
	}
	return p, nil
}
