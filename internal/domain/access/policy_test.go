package access

import (
	"errors"
	"testing"

	"intern-hub/internal/domain/user"

	"github.com/google/uuid"
)

func TestAuthorize_RoleTable(t *testing.T) {
	cases := []struct {
		op      Operation
		role    user.Role
		allowed bool
	}{
		{OpAssignMentor, user.RoleHR, true},
		{OpAssignMentor, user.RoleMentor, false},
		{OpAssignMentor, user.RoleIntern, false},
		{OpCreateProject, user.RoleMentor, true},
		{OpCreateProject, user.RoleHR, true},
		{OpCreateProject, user.RoleIntern, false},
		{OpAssignProject, user.RoleIntern, false},
		{OpSubmitWork, user.RoleIntern, true},
		{OpSubmitWork, user.RoleHR, false},
		{OpGradeSubmission, user.RoleHR, true},
		{OpGradeSubmission, user.RoleMentor, false},
		{OpViewMentorDashboard, user.RoleHR, false},
	}

	for _, tc := range cases {
		err := Authorize(Session{UserID: uuid.New(), Role: tc.role}, tc.op, nil)
		if tc.allowed && err != nil {
			t.Fatalf("%s as %s: expected allow, got %v", tc.op, tc.role, err)
		}
		if !tc.allowed && !errors.Is(err, ErrForbidden) {
			t.Fatalf("%s as %s: expected ErrForbidden, got %v", tc.op, tc.role, err)
		}
	}
}

func TestAuthorize_NoSession(t *testing.T) {
	err := Authorize(Session{}, OpCreateProject, nil)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthorize_AssignProjectOwnership(t *testing.T) {
	mentorID := uuid.New()
	otherMentor := uuid.New()
	mentor := Session{UserID: mentorID, Role: user.RoleMentor}
	hr := Session{UserID: uuid.New(), Role: user.RoleHR}

	if err := Authorize(mentor, OpAssignProject, &Resource{InternMentorID: &mentorID}); err != nil {
		t.Fatalf("mentor of intern should be allowed, got %v", err)
	}

	err := Authorize(mentor, OpAssignProject, &Resource{InternMentorID: &otherMentor})
	if !errors.Is(err, ErrNotYourIntern) || !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrNotYourIntern, got %v", err)
	}

	err = Authorize(mentor, OpAssignProject, &Resource{})
	if !errors.Is(err, ErrNotYourIntern) {
		t.Fatalf("intern without mentor: expected ErrNotYourIntern, got %v", err)
	}

	if err := Authorize(hr, OpAssignProject, &Resource{InternMentorID: &otherMentor}); err != nil {
		t.Fatalf("HR bypasses mentorship, got %v", err)
	}
}

func TestAuthorize_SubmitOwnWorkOnly(t *testing.T) {
	internID := uuid.New()
	other := uuid.New()
	s := Session{UserID: internID, Role: user.RoleIntern}

	if err := Authorize(s, OpSubmitWork, &Resource{OwnerID: &internID}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := Authorize(s, OpSubmitWork, &Resource{OwnerID: &other}); !errors.Is(err, ErrNotYourSubmission) {
		t.Fatalf("expected ErrNotYourSubmission, got %v", err)
	}
}

func TestAuthorize_CreateProjectCreator(t *testing.T) {
	mentorID := uuid.New()
	other := uuid.New()
	mentor := Session{UserID: mentorID, Role: user.RoleMentor}
	hr := Session{UserID: uuid.New(), Role: user.RoleHR}

	if err := Authorize(mentor, OpCreateProject, &Resource{OwnerID: &mentorID}); err != nil {
		t.Fatalf("mentor as creator should be allowed, got %v", err)
	}
	if err := Authorize(mentor, OpCreateProject, &Resource{OwnerID: &other}); !errors.Is(err, ErrNotYourProject) {
		t.Fatalf("expected ErrNotYourProject, got %v", err)
	}
	if err := Authorize(hr, OpCreateProject, &Resource{OwnerID: &other}); err != nil {
		t.Fatalf("HR may name another creator, got %v", err)
	}
}

func TestDashboardPath(t *testing.T) {
	if DashboardPath(user.RoleMentor) != "/dashboard/mentor" {
		t.Fatalf("unexpected mentor path")
	}
	if DashboardPath(user.Role("GUEST")) != "/login" {
		t.Fatalf("unknown role should land on login")
	}
}
