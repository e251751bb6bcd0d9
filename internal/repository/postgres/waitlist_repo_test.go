package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"landingwaitlist/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitlistRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rec     *domain.WaitlistRecord
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			rec:  domain.NewWaitlistRecord("rec-1", "test@example.com", createdAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO waitlist \(id, email, created_at\)`).
					WithArgs("rec-1", "test@example.com", createdAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "unique violation returns ErrDuplicateEmail",
			rec:  domain.NewWaitlistRecord("rec-2", "taken@example.com", createdAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO waitlist`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
		{
			name: "other pq error is not a duplicate",
			rec:  domain.NewWaitlistRecord("rec-3", "a@b.com", createdAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO waitlist`).
					WillReturnError(&pq.Error{Code: "23502"})
			},
			wantErr: true,
		},
		{
			name: "db error",
			rec:  domain.NewWaitlistRecord("rec-4", "a@b.com", createdAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO waitlist`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
			errIs:   sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewWaitlistRepository(db)
			err = repo.Create(ctx, tt.rec)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				} else {
					require.NotErrorIs(t, err, domain.ErrDuplicateEmail)
				}
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWaitlistRepository_List(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	tests := []struct {
		name      string
		search    string
		params    domain.PaginationParams
		mock      func(mock sqlmock.Sqlmock)
		wantLen   int
		wantTotal int
		wantErr   bool
	}{
		{
			name:   "first page",
			params: domain.PaginationParams{Page: 1, PageSize: 2},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM waitlist`).
					WithArgs("").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
				mock.ExpectQuery(`SELECT id, email, created_at\s+FROM waitlist`).
					WithArgs("", 2, 0).
					WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}).
						AddRow("rec-1", "a@example.com", t1).
						AddRow("rec-2", "b@example.com", t2))
			},
			wantLen:   2,
			wantTotal: 3,
		},
		{
			name:   "search with no rows returns empty slice",
			search: "nobody",
			params: domain.PaginationParams{Page: 2, PageSize: 10},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM waitlist`).
					WithArgs("nobody").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectQuery(`SELECT id, email, created_at`).
					WithArgs("nobody", 10, 10).
					WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}))
			},
			wantLen:   0,
			wantTotal: 0,
		},
		{
			name:   "wildcards in search are escaped",
			search: `a_b%`,
			params: domain.PaginationParams{Page: 1, PageSize: 10},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM waitlist\s+WHERE .* ESCAPE`).
					WithArgs(`a\_b\%`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectQuery(`SELECT id, email, created_at`).
					WithArgs(`a\_b\%`, 10, 0).
					WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}))
			},
		},
		{
			name:   "count error",
			params: domain.PaginationParams{Page: 1, PageSize: 10},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewWaitlistRepository(db)
			recs, total, err := repo.List(ctx, tt.search, tt.params)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, recs)
			require.Len(t, recs, tt.wantLen)
			require.Equal(t, tt.wantTotal, total)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWaitlistRepository_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM waitlist`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := NewWaitlistRepository(db).Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitlistRepository_DeleteByEmail(t *testing.T) {
	tests := []struct {
		name  string
		rows  int64
		errIs error
	}{
		{"deleted", 1, nil},
		{"missing", 0, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(`DELETE FROM waitlist WHERE email = \$1`).
				WithArgs("a@example.com").
				WillReturnResult(sqlmock.NewResult(0, tt.rows))

			err = NewWaitlistRepository(db).DeleteByEmail(context.Background(), "a@example.com")
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"example.com": "example.com",
		"a_b":         `a\_b`,
		"100%":        `100\%`,
		`back\slash`: `back\\slash`,
	}
	for in, want := range tests {
		assert.Equal(t, want, escapeLike(in), in)
	}
}
