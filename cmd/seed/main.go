package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"intern-hub/internal/app"
	"intern-hub/internal/config"
	"intern-hub/internal/database/migration"
)

func main() {
	demo := flag.Bool("demo", false, "also create a demo mentor, two interns and two projects")
	migrate := flag.Bool("migrate", true, "apply schema migrations before seeding")
	dir := flag.String("migrations", "", "read migrations from this directory instead of the embedded set")
	status := flag.Bool("status", false, "list pending migrations and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if strings.EqualFold(cfg.App.StorageDriver, config.StorageDriverMemory) {
		log.Fatalf("seeding the memory store has no lasting effect; set STORAGE_DRIVER=postgres")
	}
	// Migrations run below when asked for; the container must not run them twice.
	cfg.App.AutoMigrate = false

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	r := migration.Runner{Dir: strings.TrimSpace(*dir)}
	if *status {
		pending, err := r.Pending(ctx, c.DB.SQLDB())
		if err != nil {
			log.Fatalf("migration status failed: %v", err)
		}
		for _, m := range pending {
			log.Printf("pending migration version=%d file=%s", m.Version, m.Filename)
		}
		log.Printf("%d pending migration(s)", len(pending))
		return
	}

	if *migrate {
		if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		log.Printf("migrations applied")
	}

	if cfg.Seed.HREmail == "" && !*demo {
		log.Printf("nothing to seed: set SEED_HR_EMAIL or pass -demo")
		return
	}

	if err := c.Seed(ctx, *demo); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seed completed demo=%t", *demo)
}
