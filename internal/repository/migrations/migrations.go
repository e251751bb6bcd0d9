// Package migrations applies the embedded schema for each supported store.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Dialect selects the migration directory and placeholder style.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

const migrationTable = "schema_migrations"

// Apply runs every not-yet-applied migration for d in file name order, each in its own transaction.
// It returns the names of the migrations it applied.
func Apply(ctx context.Context, db *sql.DB, d Dialect) ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("sql db is required")
	}
	var mark string
	switch d {
	case Postgres:
		mark = "$1, $2"
	case SQLite:
		mark = "?, ?"
	default:
		return nil, fmt.Errorf("unknown dialect %q", d)
	}

	names, err := fs.Glob(files, string(d)+"/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, applied_at BIGINT NOT NULL)`, migrationTable)
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return nil, fmt.Errorf("ensure migration table: %w", err)
	}

	var applied []string
	for _, name := range names {
		key := path.Base(name)
		done, err := isApplied(ctx, db, d, key)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", key, err)
		}
		if done {
			continue
		}
		content, err := fs.ReadFile(files, name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", key, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("begin migration %s: %w", key, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("exec migration %s: %w", key, err)
		}
		insert := fmt.Sprintf(`INSERT INTO %s (name, applied_at) VALUES (%s)`, migrationTable, mark)
		if _, err := tx.ExecContext(ctx, insert, key, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("record migration %s: %w", key, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %s: %w", key, err)
		}
		applied = append(applied, key)
	}
	return applied, nil
}

func isApplied(ctx context.Context, db *sql.DB, d Dialect, name string) (bool, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE name = $1`, migrationTable)
	if d == SQLite {
		query = fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE name = ?`, migrationTable)
	}
	var n int
	if err := db.QueryRowContext(ctx, query, name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
