package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleIntern Role = "INTERN"
	RoleMentor Role = "MENTOR"
	RoleHR     Role = "HR"
)

// MaxPasswordBytes is the longest password bcrypt accepts, counted in bytes.
const MaxPasswordBytes = 72

func (r Role) Valid() bool {
	switch r {
	case RoleIntern, RoleMentor, RoleHR:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	MentorID     *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns a copy without the password hash.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// Summary is the reduced user shape embedded in dashboard views.
type Summary struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  Role
}

func (u User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
