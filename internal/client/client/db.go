package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/stocksense/internal/client/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// dialect maps a session driver onto its sql driver name, goose dialect and
// migrations directory.
type dialect struct {
	sqlDriver string
	goose     string
	dir       string
}

var dialects = map[string]dialect{
	"sqlite":   {sqlDriver: "sqlite", goose: "sqlite3", dir: "sqlite"},
	"postgres": {sqlDriver: "pgx", goose: "postgres", dir: "postgres"},
}

func lookupDialect(driver string) (dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported session driver %q", driver)
	}
	return d, nil
}

// RunMigrations applies the embedded migrations for driver. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	d, err := lookupDialect(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, d.dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens the session database and migrates it.
func InitDatabase(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	d, err := lookupDialect(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == "sqlite" {
		// one writer; also keeps ":memory:" databases on a single connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect %s database: %w", driver, err)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
