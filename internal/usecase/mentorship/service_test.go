package mentorship

import (
	"context"
	"errors"
	"testing"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/domain/event"
	"intern-hub/internal/domain/user"
	"intern-hub/internal/infrastructure/persistence/memory"
	"intern-hub/internal/pkg/validate"

	"github.com/google/uuid"
)

type recorder struct {
	events []event.Event
}

func (r *recorder) Publish(ev event.Event) { r.events = append(r.events, ev) }

func seedUser(t *testing.T, s *memory.Store, name string, role user.Role) user.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), user.User{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: role})
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return u
}

func TestAssignMentor_RequiresHR(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, nil)
	mentor := seedUser(t, store, "mentor", user.RoleMentor)
	intern := seedUser(t, store, "intern", user.RoleIntern)
	in := AssignMentorInput{MentorID: mentor.ID.String(), InternID: intern.ID.String()}

	_, err := svc.AssignMentor(context.Background(), access.Session{}, in)
	if !errors.Is(err, access.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	_, err = svc.AssignMentor(context.Background(), access.Session{UserID: mentor.ID, Role: user.RoleMentor}, in)
	if !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAssignMentor_NotFound(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, nil)
	hr := seedUser(t, store, "hr", user.RoleHR)
	mentor := seedUser(t, store, "mentor", user.RoleMentor)
	intern := seedUser(t, store, "intern", user.RoleIntern)
	sess := access.Session{UserID: hr.ID, Role: user.RoleHR}

	_, err := svc.AssignMentor(context.Background(), sess, AssignMentorInput{MentorID: mentor.ID.String(), InternID: uuid.NewString()})
	if !errors.Is(err, ErrInternNotFound) {
		t.Fatalf("expected ErrInternNotFound, got %v", err)
	}
	_, err = svc.AssignMentor(context.Background(), sess, AssignMentorInput{MentorID: intern.ID.String(), InternID: intern.ID.String()})
	if !errors.Is(err, ErrMentorNotFound) {
		t.Fatalf("expected ErrMentorNotFound for a non-mentor, got %v", err)
	}
	_, err = svc.AssignMentor(context.Background(), sess, AssignMentorInput{MentorID: mentor.ID.String(), InternID: mentor.ID.String()})
	if !errors.Is(err, ErrInternNotFound) {
		t.Fatalf("expected ErrInternNotFound for a non-intern, got %v", err)
	}
}

func TestAssignMentor_InvalidInput(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, nil)
	sess := access.Session{UserID: uuid.New(), Role: user.RoleHR}

	_, err := svc.AssignMentor(context.Background(), sess, AssignMentorInput{MentorID: "nope"})
	var verr *validate.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", verr.Fields)
	}
}

func TestAssignMentor_IsIdempotent(t *testing.T) {
	store := memory.NewStore()
	rec := &recorder{}
	svc := NewService(store, rec)
	hr := seedUser(t, store, "hr", user.RoleHR)
	mentor := seedUser(t, store, "mentor", user.RoleMentor)
	intern := seedUser(t, store, "intern", user.RoleIntern)
	sess := access.Session{UserID: hr.ID, Role: user.RoleHR}
	in := AssignMentorInput{MentorID: mentor.ID.String(), InternID: intern.ID.String()}

	for i := 0; i < 2; i++ {
		got, err := svc.AssignMentor(context.Background(), sess, in)
		if err != nil {
			t.Fatalf("assign %d: %v", i, err)
		}
		if got.MentorID == nil || *got.MentorID != mentor.ID {
			t.Fatalf("mentor not set on attempt %d", i)
		}
		if got.PasswordHash != "" {
			t.Fatalf("password hash leaked")
		}
	}
	if len(rec.events) != 2 || rec.events[0].Kind != event.MentorAssigned || !rec.events[0].Concerns(mentor.ID) {
		t.Fatalf("unexpected events: %+v", rec.events)
	}
}
