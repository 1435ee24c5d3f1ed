package memory

import (
	"context"
	"errors"
	"testing"

	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/submission"
	"intern-hub/internal/domain/user"

	"github.com/google/uuid"
)

func TestStore_UserEmailIsUnique(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, user.User{Name: "A", Email: "a@example.com", Role: user.RoleHR}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateUser(ctx, user.User{Name: "B", Email: "a@example.com", Role: user.RoleIntern}); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestStore_SetMentorOnlyTouchesInterns(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	mentor, _ := s.CreateUser(ctx, user.User{Name: "M", Email: "m@example.com", Role: user.RoleMentor})
	intern, _ := s.CreateUser(ctx, user.User{Name: "I", Email: "i@example.com", Role: user.RoleIntern})

	if _, err := s.SetMentor(ctx, mentor.ID, mentor.ID); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := s.SetMentor(ctx, intern.ID, mentor.ID)
	if err != nil {
		t.Fatalf("set mentor: %v", err)
	}
	if got.MentorID == nil || *got.MentorID != mentor.ID {
		t.Fatalf("mentor not set")
	}

	list, err := s.ListUsers(ctx, user.Filter{Role: user.RoleIntern, MentorID: &mentor.ID})
	if err != nil || len(list) != 1 || list[0].ID != intern.ID {
		t.Fatalf("unexpected mentored list: %v %+v", err, list)
	}
}

func TestStore_ListProjectsKeepsCreationOrder(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	creator := uuid.New()

	var ids []uuid.UUID
	for _, title := range []string{"one", "two", "three"} {
		p, err := s.CreateProject(ctx, project.Project{Title: title, Description: "description", CreatorID: creator})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, p.ID)
	}
	if _, err := s.AssignProject(ctx, ids[1], uuid.New()); err != nil {
		t.Fatalf("assign: %v", err)
	}

	all, _ := s.ListProjects(ctx, project.Filter{CreatorID: &creator})
	for i := range ids {
		if all[i].ID != ids[i] {
			t.Fatalf("order mismatch at %d", i)
		}
	}
	free, _ := s.ListProjects(ctx, project.Filter{Unassigned: true})
	if len(free) != 2 || free[0].ID != ids[0] || free[1].ID != ids[2] {
		t.Fatalf("unexpected unassigned list: %+v", free)
	}
}

func TestStore_UpsertSubmission(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	pid, iid := uuid.New(), uuid.New()
	live := "https://live.example.com"

	first, created, err := s.UpsertSubmission(ctx, submission.Submission{RepoURL: "https://r/1", LiveURL: &live, ProjectID: pid, InternID: iid})
	if err != nil || !created {
		t.Fatalf("first: created=%v err=%v", created, err)
	}
	second, created, err := s.UpsertSubmission(ctx, submission.Submission{RepoURL: "https://r/2", ProjectID: pid, InternID: iid})
	if err != nil || created {
		t.Fatalf("second: created=%v err=%v", created, err)
	}
	if second.ID != first.ID || second.RepoURL != "https://r/2" {
		t.Fatalf("expected in-place update: %+v", second)
	}
	if second.LiveURL == nil || *second.LiveURL != live {
		t.Fatalf("expected live url kept")
	}

	if _, err := s.GradeSubmission(ctx, first.ID, 7, nil); err != nil {
		t.Fatalf("grade: %v", err)
	}
	if _, _, err := s.UpsertSubmission(ctx, submission.Submission{RepoURL: "https://r/3", ProjectID: pid, InternID: iid}); !errors.Is(err, submission.ErrAlreadyGraded) {
		t.Fatalf("expected ErrAlreadyGraded, got %v", err)
	}

	list, _ := s.ListSubmissions(ctx, submission.Filter{ProjectID: &pid})
	if len(list) != 1 {
		t.Fatalf("expected one record, got %d", len(list))
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	sub, _, _ := s.UpsertSubmission(ctx, submission.Submission{RepoURL: "https://r", ProjectID: uuid.New(), InternID: uuid.New()})
	fb := "ok"
	graded, _ := s.GradeSubmission(ctx, sub.ID, 5, &fb)
	*graded.Grade = 10
	fb = "changed"

	again, _ := s.GetSubmissionByID(ctx, sub.ID)
	if *again.Grade != 5 || *again.Feedback != "ok" {
		t.Fatalf("stored submission was mutated: %+v", again)
	}
}
