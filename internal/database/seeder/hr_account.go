package seeder

import (
	"context"
	"fmt"
	"strings"

	"intern-hub/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

// HRAccountSeeder creates the first HR user. Nothing happens when the email is taken.
type HRAccountSeeder struct {
	FullName string
	Email    string
	Password string
	Cost     int
}

func (HRAccountSeeder) Name() string { return "hr_account" }

func (s HRAccountSeeder) Run(ctx context.Context, st Stores) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" {
		return fmt.Errorf("empty email")
	}
	if len(s.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(s.Password) > user.MaxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes", user.MaxPasswordBytes)
	}

	exists, err := st.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	name := strings.TrimSpace(s.FullName)
	if name == "" {
		name = "HR Admin"
	}
	_, err = createUser(ctx, st.Users, name, email, s.Password, user.RoleHR, s.Cost)
	return err
}

func createUser(ctx context.Context, users user.Repository, name, email, password string, role user.Role, cost int) (user.User, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return user.User{}, err
	}
	return users.CreateUser(ctx, user.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
}
