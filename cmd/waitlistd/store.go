package main

import (
	"context"
	"database/sql"
	"fmt"

	"landingwaitlist/config"
	"landingwaitlist/internal/domain"
	"landingwaitlist/internal/repository/postgres"
	"landingwaitlist/internal/repository/sqlite"
)

// openStore opens the configured database, applies migrations and returns the waitlist repository on top of it.
func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, domain.WaitlistRepository, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, sqlite.NewWaitlistRepository(db), nil
	case config.StoreDriverPostgres:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		return db, postgres.NewWaitlistRepository(db), nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
