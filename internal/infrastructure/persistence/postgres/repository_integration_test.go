package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"intern-hub/internal/config"
	"intern-hub/internal/database/migration"
	dbpostgres "intern-hub/internal/database/postgres"
	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/submission"
	"intern-hub/internal/domain/user"

	"github.com/google/uuid"
)

func openTestDB(t *testing.T) *dbpostgres.Pool {
	t.Helper()

	host := os.Getenv("TEST_DATABASE_HOST")
	if host == "" {
		t.Skip("TEST_DATABASE_HOST not set")
	}
	cfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     envOr("TEST_DATABASE_PORT", "5432"),
		DBName:     envOr("TEST_DATABASE_NAME", "intern_hub_test"),
		DBUser:     envOr("TEST_DATABASE_USER", "postgres"),
		DBPassword: os.Getenv("TEST_DATABASE_PASSWORD"),
		DBSSLMode:  envOr("TEST_DATABASE_SSL_MODE", "disable"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := dbpostgres.Connect(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })

	if err := (migration.Runner{}).Run(ctx, pool.SQLDB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE submissions, projects, users CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func TestRepositories_Postgres(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()

	users := NewUserRepository(pool)
	projects := NewProjectRepository(pool)
	subs := NewSubmissionRepository(pool)

	mentor, err := users.CreateUser(ctx, user.User{Name: "Mia", Email: "mia@example.com", PasswordHash: "x", Role: user.RoleMentor})
	if err != nil {
		t.Fatalf("create mentor: %v", err)
	}
	intern, err := users.CreateUser(ctx, user.User{Name: "Ian", Email: "ian@example.com", PasswordHash: "x", Role: user.RoleIntern})
	if err != nil {
		t.Fatalf("create intern: %v", err)
	}
	if _, err := users.CreateUser(ctx, user.User{Name: "Dup", Email: "ian@example.com", PasswordHash: "x", Role: user.RoleIntern}); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := users.SetMentor(ctx, mentor.ID, mentor.ID); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound when target is not an intern, got %v", err)
	}
	updated, err := users.SetMentor(ctx, intern.ID, mentor.ID)
	if err != nil {
		t.Fatalf("set mentor: %v", err)
	}
	if updated.MentorID == nil || *updated.MentorID != mentor.ID {
		t.Fatalf("mentor not set: %+v", updated)
	}

	mentored, err := users.ListUsers(ctx, user.Filter{Role: user.RoleIntern, MentorID: &mentor.ID})
	if err != nil || len(mentored) != 1 {
		t.Fatalf("list mentored interns: %v %d", err, len(mentored))
	}

	p, err := projects.CreateProject(ctx, project.Project{Title: "API", Description: "Build the API layer", CreatorID: mentor.ID})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	unassigned, err := projects.ListProjects(ctx, project.Filter{CreatorID: &mentor.ID, Unassigned: true})
	if err != nil || len(unassigned) != 1 {
		t.Fatalf("list unassigned: %v %d", err, len(unassigned))
	}
	if _, err := projects.AssignProject(ctx, uuid.New(), intern.ID); !errors.Is(err, project.ErrNotFound) {
		t.Fatalf("expected project.ErrNotFound, got %v", err)
	}
	if _, err := projects.AssignProject(ctx, p.ID, intern.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	live := "https://demo.example.com"
	first, created, err := subs.UpsertSubmission(ctx, submission.Submission{RepoURL: "https://git.example.com/a", LiveURL: &live, ProjectID: p.ID, InternID: intern.ID})
	if err != nil || !created {
		t.Fatalf("first upsert: created=%v err=%v", created, err)
	}
	second, created, err := subs.UpsertSubmission(ctx, submission.Submission{RepoURL: "https://git.example.com/b", ProjectID: p.ID, InternID: intern.ID})
	if err != nil || created {
		t.Fatalf("second upsert: created=%v err=%v", created, err)
	}
	if second.ID != first.ID || second.RepoURL != "https://git.example.com/b" {
		t.Fatalf("expected in-place update, got %+v", second)
	}
	if second.LiveURL == nil || *second.LiveURL != live {
		t.Fatalf("expected live url kept, got %v", second.LiveURL)
	}

	fb := "Great work"
	graded, err := subs.GradeSubmission(ctx, first.ID, 9, &fb)
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if graded.Grade == nil || *graded.Grade != 9 || graded.Feedback == nil || *graded.Feedback != fb {
		t.Fatalf("unexpected graded submission: %+v", graded)
	}
	regraded, err := subs.GradeSubmission(ctx, first.ID, 8, nil)
	if err != nil {
		t.Fatalf("regrade: %v", err)
	}
	if regraded.Feedback == nil || *regraded.Feedback != fb {
		t.Fatalf("expected feedback kept on regrade")
	}

	if _, _, err := subs.UpsertSubmission(ctx, submission.Submission{RepoURL: "https://git.example.com/c", ProjectID: p.ID, InternID: intern.ID}); !errors.Is(err, submission.ErrAlreadyGraded) {
		t.Fatalf("expected ErrAlreadyGraded, got %v", err)
	}

	all, err := subs.ListSubmissions(ctx, submission.Filter{InternID: &intern.ID})
	if err != nil || len(all) != 1 {
		t.Fatalf("expected exactly one submission, got %d (%v)", len(all), err)
	}
}
