package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"landingwaitlist/internal/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

type waitlistRepository struct {
	DB *sql.DB
}

// NewWaitlistRepository returns a domain.WaitlistRepository implemented with Postgres.
func NewWaitlistRepository(db *sql.DB) domain.WaitlistRepository {
	return &waitlistRepository{DB: db}
}

func (r *waitlistRepository) Create(ctx context.Context, rec *domain.WaitlistRecord) error {
	query := `
		INSERT INTO waitlist (id, email, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, rec.ID, rec.Email, rec.CreatedAt)
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
	countQuery := `
		SELECT COUNT(*) FROM waitlist
		WHERE ($1 = '' OR email ILIKE '%' || $1 || '%' ESCAPE '\')
	`
	if err := r.DB.QueryRowContext(ctx, countQuery, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, email, created_at
		FROM waitlist
		WHERE ($1 = '' OR email ILIKE '%' || $1 || '%' ESCAPE '\')
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, search, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var recs []*domain.WaitlistRecord
	for rows.Next() {
		rec := &domain.WaitlistRecord{}
		if err := rows.Scan(&rec.ID, &rec.Email, &rec.CreatedAt); err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if recs == nil {
		recs = []*domain.WaitlistRecord{}
	}
	return recs, total, nil
}

func (r *waitlistRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM waitlist`).Scan(&n)
	return n, err
}

func (r *waitlistRepository) DeleteByEmail(ctx context.Context, email string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM waitlist WHERE email = $1`, email)
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
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
