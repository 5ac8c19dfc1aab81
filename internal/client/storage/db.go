package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dishcovery/dishcovery/internal/client/storage/migrations"
	"github.com/dishcovery/dishcovery/internal/filex"
	"github.com/pressly/goose/v3"
)

// Open opens (creating if needed) the local SQLite database at dsn and
// brings its schema up to date. The caller registers the driver by blank
// importing modernc.org/sqlite.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate local store: %w", err)
	}

	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
