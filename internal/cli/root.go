package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/diogenes-ai-code/timeago/internal/config"
	"github.com/diogenes-ai-code/timeago/internal/timestamp"
	"github.com/spf13/cobra"
)

// Version information (set at build time via ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global flags
var (
	dbPath    string
	jsonOut   bool
	quiet     bool
	verbose   bool
	noColor   bool
	localTime bool
)

// Global configuration (loaded once at startup)
var globalConfig *config.Config

// Exit codes
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitInvalidArgs  = 2
	ExitNotFound     = 3
	ExitDBError      = 5
)

var rootCmd = &cobra.Command{
	Use:   "timeago",
	Short: "Keep timestamps on a page readable as relative times",
	Long: `timeago turns raw timestamps on a page ("1700000000", "2024-01-15 10:30:00",
"2024-01-15T10:30:00Z") into relative phrases such as "5 mins ago" and keeps
them current.

It can render a page once, serve it with live updates, and keep a small
feed of posts whose timestamps it renders.

Use "timeago init" to create the feed database.
Use "timeago --help" to see all available commands.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureColor()
		return nil
	},
}

func init() {
	// Load global configuration at startup
	var err error
	globalConfig, err = config.Load()
	if err != nil {
		// If config file is invalid, print warning but continue with defaults
		fmt.Fprintf(os.Stderr, "Warning: failed to load config file: %v\n", err)
		globalConfig = config.DefaultConfig()
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to database file (default ~/.timeago/timeago.db)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&localTime, "local-time", false, "Read timestamps without a zone as local time instead of UTC")

	// Set version template for --version flag
	rootCmd.SetVersionTemplate(fmt.Sprintf("timeago %s (%s, %s)\n", Version, shortCommit(), shortDate()))

	// Add commands
	rootCmd.AddCommand(versionCmd)
}

// shortCommit returns the first 7 characters of the git commit hash
func shortCommit() string {
	if len(GitCommit) >= 7 {
		return GitCommit[:7]
	}
	return GitCommit
}

// shortDate returns just the date portion of BuildDate (YYYY-MM-DD)
func shortDate() string {
	if len(BuildDate) >= 10 {
		return BuildDate[:10]
	}
	return BuildDate
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// GetDBPath returns the database path from flags, config, or default.
// Priority: flag > env > config file > default
func GetDBPath() string {
	// Command-line flag has highest priority
	if dbPath != "" {
		return dbPath
	}
	// Config already handles env > file > default
	if globalConfig != nil {
		return globalConfig.GetDB()
	}
	return "" // Will use default in db.Open
}

// IsJSON returns whether JSON output is requested
func IsJSON() bool {
	return jsonOut
}

// IsNoColor returns whether colored output should be disabled.
// Priority: flag > env > config file > default
func IsNoColor() bool {
	if noColor {
		return true
	}
	if globalConfig != nil {
		return globalConfig.NoColor
	}
	return false
}

// AssumeUTC reports whether zoneless timestamps are read as UTC.
// Priority: --local-time > env > config file > default
func AssumeUTC() bool {
	if localTime {
		return false
	}
	return GetConfig().AssumeUTC
}

// GetConfig returns the global configuration.
func GetConfig() *config.Config {
	if globalConfig != nil {
		return globalConfig
	}
	return config.DefaultConfig()
}

// newParser builds the timestamp parser for the current flags and config.
func newParser() *timestamp.Parser {
	return timestamp.New(timestamp.Config{
		AssumeLocal: !AssumeUTC(),
		Location:    time.Local,
	})
}

// IsQuiet returns whether quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verbose
}

// Output prints to stdout unless quiet mode is enabled
func Output(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf(format, args...)
	}
}

// OutputLine prints a line to stdout unless quiet mode is enabled
func OutputLine(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// VerboseOutput prints to stdout only in verbose mode
func VerboseOutput(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Printf(format, args...)
	}
}

// ErrorOutput prints to stderr
func ErrorOutput(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
