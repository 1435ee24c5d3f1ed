package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// lockKey serialises concurrent runners across server instances.
const lockKey int64 = 746295114

const ledgerDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Runner applies migrations in version order. FS wins over Dir; with neither
// set the embedded migrations are used.
type Runner struct {
	FS  fs.FS
	Dir string
}

// Run applies every pending migration, each in its own transaction, while
// holding a session advisory lock. An applied migration whose file changed
// is an error.
func (r Runner) Run(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	migs, err := Load(r.source())
	if err != nil || len(migs) == 0 {
		return err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return err
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	if _, err := conn.ExecContext(ctx, ledgerDDL); err != nil {
		return err
	}

	pending, err := pendingOn(ctx, conn, migs)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if err := apply(ctx, conn, m); err != nil {
			return err
		}
	}
	return nil
}

// Pending lists the migrations Run would apply, without taking the lock.
func (r Runner) Pending(ctx context.Context, db *sql.DB) ([]Migration, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	migs, err := Load(r.source())
	if err != nil || len(migs) == 0 {
		return nil, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, ledgerDDL); err != nil {
		return nil, err
	}
	return pendingOn(ctx, conn, migs)
}

func (r Runner) source() fs.FS {
	switch {
	case r.FS != nil:
		return r.FS
	case strings.TrimSpace(r.Dir) != "":
		return os.DirFS(r.Dir)
	default:
		return Embedded()
	}
}

func pendingOn(ctx context.Context, conn *sql.Conn, migs []Migration) ([]Migration, error) {
	rows, err := conn.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := map[int64]string{}
	for rows.Next() {
		var version int64
		var checksum string
		if err := rows.Scan(&version, &checksum); err != nil {
			return nil, err
		}
		applied[version] = checksum
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []Migration
	for _, m := range migs {
		checksum, ok := applied[m.Version]
		if !ok {
			out = append(out, m)
			continue
		}
		if checksum != m.Checksum {
			return nil, fmt.Errorf("migration checksum mismatch: version=%d name=%s", m.Version, m.Name)
		}
	}
	return out, nil
}

func apply(ctx context.Context, conn *sql.Conn, m Migration) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply migration failed: version=%d file=%s: %w", m.Version, m.Filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		m.Version, m.Name, m.Checksum,
	); err != nil {
		return err
	}
	return tx.Commit()
}
