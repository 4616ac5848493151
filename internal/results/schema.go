package results

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
)

// schemaDDL holds the attempt ledger schema.
//
//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the schema DDL used for initializing ledger databases.
func SchemaDDL() string {
	return schemaDDL
}

// EnsureSchema applies the schema DDL to the provided database connection.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("results: db is nil")
	}
	_, err := db.ExecContext(ctx, schemaDDL)
	return err
}

// Open opens (or creates) a DuckDB ledger at path and applies the schema.
// An empty path or ":memory:" opens an in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if dsn == ":memory:" {
		dsn = ""
	}
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping ledger: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply ledger schema: %w", err)
	}
	return db, nil
}
