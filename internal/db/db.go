// Package db stores the timeago feed in SQLite.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is where the feed lives unless --db, TIMEAGO_DB, or the
// config file say otherwise.
const DefaultDBPath = "~/.timeago/timeago.db"

// pragmas are applied to every connection of a file-backed feed.
var pragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(ON)",
	"busy_timeout(5000)",
}

// DB is an open feed database.
type DB struct {
	*sql.DB
	path string
}

// Open opens the feed at path, creating the file and its directory when
// missing. An empty path means DefaultDBPath. The schema is not touched;
// call Migrate for that.
func Open(path string) (*DB, error) {
	path = Resolve(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create feed directory: %w", err)
	}

	dsn := "file:" + path + "?_pragma=" + strings.Join(pragmas, "&_pragma=")
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed %s: %w", path, err)
	}

	// One writer at a time; posts are small and rare.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to open feed %s: %w", path, err)
	}

	return &DB{DB: sqlDB, path: path}, nil
}

// Path is the resolved file path, or ":memory:" for test databases.
func (d *DB) Path() string {
	return d.path
}

func (d *DB) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// Resolve applies the DefaultDBPath fallback and expands a leading ~.
func Resolve(path string) string {
	if path == "" {
		path = DefaultDBPath
	}
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Exists reports whether a feed file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(Resolve(path))
	return err == nil
}

// Delete removes the feed at path along with its WAL sidecar files.
func Delete(path string) error {
	path = Resolve(path)
	for _, sidecar := range []string{"-wal", "-shm"} {
		os.Remove(path + sidecar)
	}
	return os.Remove(path)
}
