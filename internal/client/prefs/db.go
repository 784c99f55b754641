package prefs

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskkeeper/internal/client/prefs/migrations"
	"github.com/dmitrijs2005/taskkeeper/internal/filex"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the preference database at dsn and
// applies migrations.
func Open(ctx context.Context, dsn string) (*Preferences, error) {
	if _, err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" databases consistent
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	p := New(NewSQLiteRepository(db))
	p.closer = db
	return p, nil
}
