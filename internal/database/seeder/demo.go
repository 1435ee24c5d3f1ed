package seeder

import (
	"context"

	"intern-hub/internal/domain/project"
	"intern-hub/internal/domain/user"
)

const demoPassword = "password123"

// DemoSeeder loads a small mentor/intern/project set for local runs. It is
// skipped once the demo mentor exists.
type DemoSeeder struct {
	Cost int
}

func (DemoSeeder) Name() string { return "demo" }

func (s DemoSeeder) Run(ctx context.Context, st Stores) error {
	exists, err := st.Users.ExistsByEmail(ctx, "mentor@demo.local")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	mentor, err := createUser(ctx, st.Users, "Demo Mentor", "mentor@demo.local", demoPassword, user.RoleMentor, s.Cost)
	if err != nil {
		return err
	}

	interns := make([]user.User, 0, 2)
	for _, it := range []struct{ name, email string }{
		{"Demo Intern One", "intern1@demo.local"},
		{"Demo Intern Two", "intern2@demo.local"},
	} {
		u, err := createUser(ctx, st.Users, it.name, it.email, demoPassword, user.RoleIntern, s.Cost)
		if err != nil {
			return err
		}
		if u, err = st.Users.SetMentor(ctx, u.ID, mentor.ID); err != nil {
			return err
		}
		interns = append(interns, u)
	}

	projects := []project.Project{
		{Title: "Landing page", Description: "Build the public landing page with a signup form.", CreatorID: mentor.ID},
		{Title: "REST API", Description: "Expose the product catalogue over a small REST API.", CreatorID: mentor.ID},
	}
	for i, p := range projects {
		created, err := st.Projects.CreateProject(ctx, p)
		if err != nil {
			return err
		}
		if i == 0 {
			if _, err := st.Projects.AssignProject(ctx, created.ID, interns[0].ID); err != nil {
				return err
			}
		}
	}
	return nil
}
