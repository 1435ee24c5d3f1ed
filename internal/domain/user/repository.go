package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Repository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindByIDAndRole returns ErrNotFound when the user is missing or holds another role.
	FindByIDAndRole(ctx context.Context, id uuid.UUID, role Role) (User, error)
	// SetMentor updates mentor_id of an INTERN user only.
	SetMentor(ctx context.Context, internID uuid.UUID, mentorID uuid.UUID) (User, error)

	ListUsers(ctx context.Context, f Filter) ([]User, error)
}

// Filter narrows ListUsers. Zero values mean "any".
type Filter struct {
	Role     Role
	MentorID *uuid.UUID
}
