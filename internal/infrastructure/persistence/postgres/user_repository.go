package postgres

import (
	"context"
	"fmt"
	"strings"

	"intern-hub/internal/database"
	dbpostgres "intern-hub/internal/database/postgres"
	"intern-hub/internal/domain/user"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const userColumns = `id, name, email, password, role, mentor_id, created_at, updated_at`

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (name, email, password, role, mentor_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		u.Name, u.Email, u.PasswordHash, string(u.Role), u.MentorID,
	)
	out, err := scanUser(row)
	if err != nil {
		if dbpostgres.IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, errors.Wrap(err, "insert user")
	}
	return out, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return oneUser(scanUser(row))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return oneUser(scanUser(row))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "check email")
	}
	return exists, nil
}

func (r *UserRepository) FindByIDAndRole(ctx context.Context, id uuid.UUID, role user.Role) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND role = $2`,
		id, string(role),
	)
	return oneUser(scanUser(row))
}

func (r *UserRepository) SetMentor(ctx context.Context, internID uuid.UUID, mentorID uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users
		 SET mentor_id = $2, updated_at = now()
		 WHERE id = $1 AND role = 'INTERN'
		 RETURNING `+userColumns,
		internID, mentorID,
	)
	return oneUser(scanUser(row))
}

func (r *UserRepository) ListUsers(ctx context.Context, f user.Filter) ([]user.User, error) {
	var (
		conds []string
		args  []any
	)
	if f.Role != "" {
		args = append(args, string(f.Role))
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if f.MentorID != nil {
		args = append(args, *f.MentorID)
		conds = append(conds, fmt.Sprintf("mentor_id = $%d", len(args)))
	}

	q := `SELECT ` + userColumns + ` FROM users`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return out, nil
}

func scanUser(row database.Row) (user.User, error) {
	var (
		u    user.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.MentorID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}

func oneUser(u user.User, err error) (user.User, error) {
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "query user")
	}
	return u, nil
}
