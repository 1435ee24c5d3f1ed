package seeder

import (
	"context"
	"fmt"

	"intern-hub/internal/database"
)

// Runner applies seeders in order. When DB is set the schema is checked first.
type Runner struct {
	DB      database.DB
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, st Stores) error {
	if st.Users == nil || st.Projects == nil || st.Submissions == nil {
		return fmt.Errorf("incomplete stores")
	}
	if r.DB != nil {
		if err := checkSchema(ctx, r.DB); err != nil {
			return err
		}
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, st); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

func checkSchema(ctx context.Context, db database.DB) error {
	tables := []struct {
		name    string
		columns []string
	}{
		{"users", []string{"id", "name", "email", "password", "role", "mentor_id"}},
		{"projects", []string{"id", "title", "description", "creator_id", "assigned_to_id"}},
		{"submissions", []string{"id", "repo_url", "live_url", "project_id", "intern_id", "grade", "feedback"}},
	}
	for _, t := range tables {
		if err := EnsureTableColumns(ctx, db, t.name, t.columns...); err != nil {
			return err
		}
	}
	return nil
}
