package db

import (
	"database/sql"
	"testing"
)

// NewTestDB returns a migrated in-memory feed. Tests use it instead of a
// file so they can never touch ~/.timeago/timeago.db. The database is closed
// when the test ends.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		t.Fatalf("open in-memory feed: %v", err)
	}
	// A second pooled connection would see a different, empty database.
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(sqlDB); err != nil {
		sqlDB.Close()
		t.Fatalf("migrate in-memory feed: %v", err)
	}

	d := &DB{DB: sqlDB, path: ":memory:"}
	t.Cleanup(func() { d.Close() })
	return d
}
