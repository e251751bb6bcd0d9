// Package sqlite provides an embedded SQLite waitlist store for single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"landingwaitlist/internal/domain"
	"landingwaitlist/internal/repository/migrations"
)

// Open opens the SQLite database at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite serialises writers; a single connection avoids SQLITE_BUSY between our own goroutines.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := migrations.Apply(ctx, db, migrations.SQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

type waitlistRepository struct {
	DB *sql.DB
}

// NewWaitlistRepository returns a domain.WaitlistRepository backed by SQLite.
func NewWaitlistRepository(db *sql.DB) domain.WaitlistRepository {
	return &waitlistRepository{DB: db}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func (r *waitlistRepository) Create(ctx context.Context, rec *domain.WaitlistRecord) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO waitlist (id, email, created_at) VALUES (?, ?, ?)`,
		rec.ID, rec.Email, toMillis(rec.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert %q: %w", rec.Email, domain.ErrDuplicateEmail)
		}
		return err
	}
	return nil
}

func (r *waitlistRepository) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.WaitlistRecord, int, error) {
	search = escapeLike(search)
	var total int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM waitlist WHERE (? = '' OR email LIKE '%' || ? || '%' ESCAPE '\')`,
		search, search,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, email, created_at FROM waitlist
		 WHERE (? = '' OR email LIKE '%' || ? || '%' ESCAPE '\')
		 ORDER BY created_at ASC, id ASC
		 LIMIT ? OFFSET ?`,
		search, search, params.PageSize, params.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	recs := []*domain.WaitlistRecord{}
	for rows.Next() {
		var (
			rec       domain.WaitlistRecord
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.Email, &createdAt); err != nil {
			return nil, 0, err
		}
		rec.CreatedAt = fromMillis(createdAt)
		recs = append(recs, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

func (r *waitlistRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM waitlist`).Scan(&n)
	return n, err
}

func (r *waitlistRepository) DeleteByEmail(ctx context.Context, email string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM waitlist WHERE email = ?`, email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
