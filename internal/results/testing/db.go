package resultstesting

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"quizdoc/internal/results"
	"quizdoc/internal/testutil"
)

const (
	defaultTimeout = 5 * time.Second
)

// Open opens an in-memory ledger with the schema applied.
func Open(t testing.TB) (*sql.DB, context.Context) {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	db, err := results.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, ctx
}

// QueryInt returns a single integer value from the database.
func QueryInt(t testing.TB, ctx context.Context, db *sql.DB, query string, args ...interface{}) int {
	t.Helper()
	var out int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		t.Fatalf("query int failed: %v", err)
	}
	return out
}
