package seeder

import "intern-hub/internal/config"

// Defaults returns the HR account seeder when one is configured, followed by
// the demo data seeder when demo is set.
func Defaults(cfg config.SeedConfig, bcryptCost int, demo bool) []Seeder {
	var out []Seeder
	if cfg.HREmail != "" {
		out = append(out, HRAccountSeeder{
			FullName: cfg.HRName,
			Email:    cfg.HREmail,
			Password: cfg.HRPassword,
			Cost:     bcryptCost,
		})
	}
	if demo {
		out = append(out, DemoSeeder{Cost: bcryptCost})
	}
	return out
}
