// Package access holds the request-scoped session and the single authorization
// policy every usecase consults.
package access

import (
	"errors"
	"fmt"

	"intern-hub/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	ErrNotYourIntern     = fmt.Errorf("%w: you can only assign projects to your interns", ErrForbidden)
	ErrNotYourSubmission = fmt.Errorf("%w: you can only submit your own work", ErrForbidden)
	ErrNotYourProject    = fmt.Errorf("%w: you can only create projects as yourself", ErrForbidden)
)

// Session is the verified caller identity for one request.
type Session struct {
	UserID  uuid.UUID
	Role    user.Role
	TokenID string
}

func (s Session) Valid() bool {
	return s.UserID != uuid.Nil && s.Role.Valid()
}

type Operation string

const (
	OpAssignMentor        Operation = "mentor.assign"
	OpCreateProject       Operation = "project.create"
	OpAssignProject       Operation = "project.assign"
	OpSubmitWork          Operation = "submission.submit"
	OpGradeSubmission     Operation = "submission.grade"
	OpViewHRDashboard     Operation = "dashboard.hr"
	OpViewMentorDashboard Operation = "dashboard.mentor"
	OpViewInternDashboard Operation = "dashboard.intern"
)

var allowedRoles = map[Operation][]user.Role{
	OpAssignMentor:        {user.RoleHR},
	OpCreateProject:       {user.RoleMentor, user.RoleHR},
	OpAssignProject:       {user.RoleMentor, user.RoleHR},
	OpSubmitWork:          {user.RoleIntern},
	OpGradeSubmission:     {user.RoleHR},
	OpViewHRDashboard:     {user.RoleHR},
	OpViewMentorDashboard: {user.RoleMentor},
	OpViewInternDashboard: {user.RoleIntern},
}

// Resource carries the ownership facts an operation is checked against.
// A nil Resource checks the caller's role only.
type Resource struct {
	// OwnerID is the user the write is made on behalf of: the creator of a new
	// project or the intern of a submission.
	OwnerID *uuid.UUID
	// InternMentorID is the mentor of the intern targeted by the operation.
	InternMentorID *uuid.UUID
}

// Authorize decides whether the session may perform op on res.
func Authorize(s Session, op Operation, res *Resource) error {
	if !s.Valid() {
		return ErrUnauthenticated
	}
	if !RoleAllowed(op, s.Role) {
		return ErrForbidden
	}
	if res == nil {
		return nil
	}

	switch op {
	case OpAssignProject:
		if s.Role == user.RoleHR {
			return nil
		}
		if res.InternMentorID == nil || *res.InternMentorID != s.UserID {
			return ErrNotYourIntern
		}
	case OpSubmitWork:
		if res.OwnerID == nil || *res.OwnerID != s.UserID {
			return ErrNotYourSubmission
		}
	case OpCreateProject:
		if s.Role == user.RoleHR {
			return nil
		}
		if res.OwnerID != nil && *res.OwnerID != s.UserID {
			return ErrNotYourProject
		}
	}
	return nil
}

func RoleAllowed(op Operation, role user.Role) bool {
	for _, r := range allowedRoles[op] {
		if r == role {
			return true
		}
	}
	return false
}

// DashboardPath is the landing page of a role.
func DashboardPath(role user.Role) string {
	switch role {
	case user.RoleHR:
		return "/dashboard/hr"
	case user.RoleMentor:
		return "/dashboard/mentor"
	case user.RoleIntern:
		return "/dashboard/intern"
	default:
		return "/login"
	}
}
