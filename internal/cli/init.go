package cli

import (
	"github.com/diogenes-ai-code/timeago/internal/backup"
	"github.com/diogenes-ai-code/timeago/internal/db"
	werrors "github.com/diogenes-ai-code/timeago/internal/errors"
	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing database")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the feed database",
	Long: `Create the feed database used by "timeago post" and "timeago serve".

This command:
- Creates ~/.timeago/ if it doesn't exist
- Creates timeago.db with the feed schema
- Runs any pending migrations

Use --force to overwrite an existing database.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

type initResult struct {
	Database string `json:"database"`
	Created  bool   `json:"created"`
	Schema   int64  `json:"schema_version"`
	Backup   string `json:"backup,omitempty"`
}

func displayDBPath(path string) string {
	if path == "" {
		return db.DefaultDBPath
	}
	return path
}

func runInit(cmd *cobra.Command, args []string) error {
	path := GetDBPath()

	// Check if database already exists
	if db.Exists(path) && !initForce {
		if IsJSON() {
			return printJSON(initResult{Database: displayDBPath(path), Created: false})
		}
		return werrors.InvalidArgs("database already exists at %s", displayDBPath(path)).
			WithSuggestion(SuggestForce)
	}

	// Back up, then delete, the existing database if force is set
	var backupPath string
	if initForce && db.Exists(path) {
		VerboseOutput("Backing up existing database...\n")
		bp, err := backup.NewRotator(db.Resolve(path), backup.DefaultKeep).Backup()
		if err != nil {
			return werrors.WrapInternal(err, "failed to back up existing database")
		}
		backupPath = bp

		VerboseOutput("Removing existing database...\n")
		if err := db.Delete(path); err != nil {
			return werrors.WrapInternal(err, "failed to remove existing database")
		}
	}

	VerboseOutput("Creating database...\n")
	database, err := db.Open(path)
	if err != nil {
		return werrors.WrapInternal(err, "failed to create database")
	}
	defer database.Close()

	VerboseOutput("Running migrations...\n")
	if err := database.Migrate(); err != nil {
		return werrors.WrapInternal(err, "failed to run migrations")
	}

	version, err := database.SchemaVersion()
	if err != nil {
		return werrors.WrapInternal(err, "failed to read schema version")
	}

	if IsJSON() {
		return printJSON(initResult{Database: database.Path(), Created: true, Schema: version, Backup: backupPath})
	}

	if backupPath != "" {
		OutputLine("Backed up previous database to %s", backupPath)
	}
	OutputLine("Initialized timeago database at %s", database.Path())
	OutputLine("Schema version: %d", version)

	return nil
}

// openFeedDB opens an initialized feed database.
func openFeedDB() (*db.DB, error) {
	path := GetDBPath()
	if !db.Exists(path) {
		return nil, werrors.NotFound("database not found at %s", displayDBPath(path)).
			WithSuggestion(SuggestRunInit)
	}
	database, err := db.Open(path)
	if err != nil {
		return nil, werrors.WrapInternal(err, "failed to open database")
	}
	return database, nil
}
