package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const migrationsDir = "migrations"

func init() {
	goose.SetBaseFS(embedMigrations)
}

// withGoose runs fn once goose speaks SQLite.
func withGoose(action string, fn func() error) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := fn(); err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	return nil
}

// Migrate brings the feed schema up to date.
func (d *DB) Migrate() error {
	return Migrate(d.DB)
}

func Migrate(db *sql.DB) error {
	return withGoose("migrate feed schema", func() error {
		return goose.Up(db, migrationsDir)
	})
}

// MigrateDown undoes the newest feed migration.
func (d *DB) MigrateDown() error {
	return withGoose("roll back feed schema", func() error {
		return goose.Down(d.DB, migrationsDir)
	})
}

// SchemaVersion is the newest applied migration, 0 for an empty file.
func (d *DB) SchemaVersion() (int64, error) {
	var version int64
	err := withGoose("read feed schema version", func() error {
		var err error
		version, err = goose.GetDBVersion(d.DB)
		return err
	})
	return version, err
}

// FeedStats summarises a feed for `timeago version`.
type FeedStats struct {
	Path   string `json:"database"`
	Schema int64  `json:"schema_version"`
	Posts  int    `json:"posts"`
}

// Stats reads the schema version and post count. Posts is 0 when the posts
// table has not been created yet.
func (d *DB) Stats() (FeedStats, error) {
	stats := FeedStats{Path: d.path}

	version, err := d.SchemaVersion()
	if err != nil {
		return stats, err
	}
	stats.Schema = version
	if version == 0 {
		return stats, nil
	}

	posts, err := NewPostRepo(d.DB).Count()
	if err != nil {
		return stats, err
	}
	stats.Posts = posts
	return stats, nil
}
