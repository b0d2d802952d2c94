package cli

import (
	"fmt"
	"runtime"

	"github.com/diogenes-ai-code/timeago/internal/db"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display the version of timeago, its build, and the schema version and post count of the feed.`,
	RunE:  runVersion,
}

type versionInfo struct {
	Version   string        `json:"version"`
	GitCommit string        `json:"git_commit"`
	BuildDate string        `json:"build_date"`
	GoVersion string        `json:"go_version"`
	Platform  string        `json:"platform"`
	Feed      *db.FeedStats `json:"feed,omitempty"`
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := versionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Feed:      feedStats(),
	}

	if IsJSON() {
		return printJSON(info)
	}

	fmt.Printf("timeago %s (%s, %s)\n", info.Version, shortCommit(), shortDate())
	fmt.Printf("Go: %s\n", info.GoVersion)
	fmt.Printf("Platform: %s\n", info.Platform)

	if info.Feed != nil {
		fmt.Printf("Feed: %s (schema v%d, %s %s)\n", info.Feed.Path, info.Feed.Schema,
			humanize.Comma(int64(info.Feed.Posts)), plural(info.Feed.Posts, "post", "posts"))
	} else {
		fmt.Println("Feed: not initialized (run 'timeago init')")
	}

	return nil
}

// feedStats describes the configured feed, or nil when there is none or it
// cannot be read. Version never creates a feed.
func feedStats() *db.FeedStats {
	path := GetDBPath()
	if !db.Exists(path) {
		return nil
	}
	database, err := db.Open(path)
	if err != nil {
		return nil
	}
	defer database.Close()

	stats, err := database.Stats()
	if err != nil {
		VerboseOutput("Could not read feed: %v\n", err)
		return nil
	}
	return &stats
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
