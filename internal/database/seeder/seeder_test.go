package seeder

import (
	"context"
	"strings"
	"testing"

	"intern-hub/internal/config"
	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/user"
	"intern-hub/internal/infrastructure/persistence/memory"

	"golang.org/x/crypto/bcrypt"
)

func memoryStores() Stores {
	s := memory.NewStore()
	return Stores{Users: s, Projects: s, Submissions: s}
}

func TestRunner_HRAccountIsIdempotent(t *testing.T) {
	st := memoryStores()
	ctx := context.Background()
	r := Runner{Seeders: Defaults(config.SeedConfig{HRName: "Root", HREmail: "Root@Example.com", HRPassword: "supersecret"}, bcrypt.MinCost, false)}

	for i := 0; i < 2; i++ {
		if err := r.Run(ctx, st); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	hrs, err := st.Users.ListUsers(ctx, user.Filter{Role: user.RoleHR})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(hrs) != 1 || hrs[0].Email != "root@example.com" {
		t.Fatalf("expected one lower-cased HR account, got %+v", hrs)
	}
	if bcrypt.CompareHashAndPassword([]byte(hrs[0].PasswordHash), []byte("supersecret")) != nil {
		t.Fatalf("password not hashed with bcrypt")
	}
}

func TestRunner_ShortPasswordFails(t *testing.T) {
	r := Runner{Seeders: []Seeder{HRAccountSeeder{Email: "hr@example.com", Password: "short", Cost: bcrypt.MinCost}}}
	if err := r.Run(context.Background(), memoryStores()); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestRunner_LongMultibytePasswordFails(t *testing.T) {
	// 30 runes, 90 bytes.
	pw := strings.Repeat("€", 30)
	r := Runner{Seeders: []Seeder{HRAccountSeeder{Email: "hr@example.com", Password: pw, Cost: bcrypt.MinCost}}}
	if err := r.Run(context.Background(), memoryStores()); err == nil || !strings.Contains(err.Error(), "72 bytes") {
		t.Fatalf("expected byte length error, got %v", err)
	}
}

func TestDemoSeeder(t *testing.T) {
	st := memoryStores()
	ctx := context.Background()
	r := Runner{Seeders: Defaults(config.SeedConfig{}, bcrypt.MinCost, true)}

	if err := r.Run(ctx, st); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := r.Run(ctx, st); err != nil {
		t.Fatalf("second run: %v", err)
	}

	interns, _ := st.Users.ListUsers(ctx, user.Filter{Role: user.RoleIntern})
	if len(interns) != 2 {
		t.Fatalf("expected 2 interns, got %d", len(interns))
	}
	for _, in := range interns {
		if in.MentorID == nil {
			t.Fatalf("intern %s has no mentor", in.Email)
		}
	}
	free, _ := st.Projects.ListProjects(ctx, project.Filter{Unassigned: true})
	if len(free) != 1 {
		t.Fatalf("expected 1 unassigned project, got %d", len(free))
	}
}

func TestRunner_IncompleteStores(t *testing.T) {
	if err := (Runner{}).Run(context.Background(), Stores{}); err == nil {
		t.Fatalf("expected error for missing stores")
	}
}
