package project

import (
	"context"
	"errors"
	"testing"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/user"
	"intern-hub/internal/infrastructure/persistence/memory"
	"intern-hub/internal/pkg/validate"

	"github.com/google/uuid"
)

type fixture struct {
	store   *memory.Store
	svc     *Service
	hr      user.User
	mentor  user.User
	other   user.User
	intern  user.User
	foreign user.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	mk := func(name string, role user.Role) user.User {
		u, err := store.CreateUser(ctx, user.User{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: role})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		return u
	}
	f := fixture{store: store, svc: NewService(store, store, nil)}
	f.hr = mk("hr", user.RoleHR)
	f.mentor = mk("mentor", user.RoleMentor)
	f.other = mk("other", user.RoleMentor)
	f.intern = mk("intern", user.RoleIntern)
	f.foreign = mk("foreign", user.RoleIntern)
	if _, err := store.SetMentor(ctx, f.intern.ID, f.mentor.ID); err != nil {
		t.Fatalf("set mentor: %v", err)
	}
	if _, err := store.SetMentor(ctx, f.foreign.ID, f.other.ID); err != nil {
		t.Fatalf("set mentor: %v", err)
	}
	return f
}

func sessionOf(u user.User) access.Session {
	return access.Session{UserID: u.ID, Role: u.Role}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, sessionOf(f.mentor), CreateInput{Title: "  API  ", Description: "Build the public API"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Title != "API" || p.CreatorID != f.mentor.ID || p.Assigned() {
		t.Fatalf("unexpected project: %+v", p)
	}

	if _, err := f.svc.Create(ctx, sessionOf(f.intern), CreateInput{Title: "API", Description: "Build the public API"}); !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for intern, got %v", err)
	}
	if _, err := f.svc.Create(ctx, sessionOf(f.mentor), CreateInput{Title: "API", Description: "Build the public API", CreatorID: f.other.ID.String()}); !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign creator, got %v", err)
	}

	_, err = f.svc.Create(ctx, sessionOf(f.hr), CreateInput{Title: "AB", Description: "short"})
	var verr *validate.Error
	if !errors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Fatalf("expected two field errors, got %v", err)
	}
}

func TestCreate_HRNamesCreator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := CreateInput{Title: "API", Description: "Build the public API"}

	in.CreatorID = f.mentor.ID.String()
	p, err := f.svc.Create(ctx, sessionOf(f.hr), in)
	if err != nil {
		t.Fatalf("hr naming a mentor: %v", err)
	}
	if p.CreatorID != f.mentor.ID {
		t.Fatalf("expected creator %s, got %s", f.mentor.ID, p.CreatorID)
	}

	in.CreatorID = f.intern.ID.String()
	if _, err := f.svc.Create(ctx, sessionOf(f.hr), in); !errors.Is(err, ErrCreatorNotFound) {
		t.Fatalf("intern as creator: expected ErrCreatorNotFound, got %v", err)
	}

	in.CreatorID = uuid.NewString()
	if _, err := f.svc.Create(ctx, sessionOf(f.hr), in); !errors.Is(err, ErrCreatorNotFound) {
		t.Fatalf("unknown creator: expected ErrCreatorNotFound, got %v", err)
	}

	all, err := f.store.ListProjects(ctx, project.Filter{})
	if err != nil || len(all) != 1 {
		t.Fatalf("expected only the valid project stored, got %d (%v)", len(all), err)
	}
}

func TestAssign_MentorOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, sessionOf(f.mentor), CreateInput{Title: "API", Description: "Build the public API"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.svc.Assign(ctx, sessionOf(f.mentor), AssignInput{ProjectID: p.ID.String(), InternID: f.foreign.ID.String()})
	if !errors.Is(err, access.ErrNotYourIntern) {
		t.Fatalf("expected ErrNotYourIntern, got %v", err)
	}

	got, err := f.svc.Assign(ctx, sessionOf(f.hr), AssignInput{ProjectID: p.ID.String(), InternID: f.foreign.ID.String()})
	if err != nil {
		t.Fatalf("hr assign: %v", err)
	}
	if !got.IsAssignedTo(f.foreign.ID) {
		t.Fatalf("project not assigned: %+v", got)
	}

	got, err = f.svc.Assign(ctx, sessionOf(f.mentor), AssignInput{ProjectID: p.ID.String(), InternID: f.intern.ID.String()})
	if err != nil {
		t.Fatalf("mentor assign: %v", err)
	}
	if !got.IsAssignedTo(f.intern.ID) {
		t.Fatalf("project not reassigned: %+v", got)
	}
}

func TestAssign_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Assign(ctx, sessionOf(f.hr), AssignInput{ProjectID: uuid.NewString(), InternID: f.intern.ID.String()})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}

	p, _ := f.svc.Create(ctx, sessionOf(f.hr), CreateInput{Title: "API", Description: "Build the public API"})
	_, err = f.svc.Assign(ctx, sessionOf(f.hr), AssignInput{ProjectID: p.ID.String(), InternID: f.mentor.ID.String()})
	if !errors.Is(err, ErrInternNotFound) {
		t.Fatalf("expected ErrInternNotFound for a mentor target, got %v", err)
	}
}
