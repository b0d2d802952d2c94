package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/diogenes-ai-code/timeago/internal/common"
	"github.com/diogenes-ai-code/timeago/internal/db"
	werrors "github.com/diogenes-ai-code/timeago/internal/errors"
	"github.com/diogenes-ai-code/timeago/internal/models"
	"github.com/diogenes-ai-code/timeago/internal/timestamp"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// Post command flags
var (
	postAuthor string
	postAt     string
	postLimit  int
)

func init() {
	postAddCmd.Flags().StringVar(&postAuthor, "author", "", "Post author (default: $USER)")
	postAddCmd.Flags().StringVar(&postAt, "at", "", "Raw timestamp stored as given (default: now, \"YYYY-MM-DD HH:MM:SS\" UTC)")
	postListCmd.Flags().IntVar(&postLimit, "limit", db.DefaultPostLimit, "Maximum number of posts to list")

	postCmd.AddCommand(postAddCmd)
	postCmd.AddCommand(postListCmd)
	rootCmd.AddCommand(postCmd)
}

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage feed posts",
	Long:  `Add and list the posts of the feed served by "timeago serve".`,
}

var postAddCmd = &cobra.Command{
	Use:   "add <body>",
	Short: "Add a post",
	Long: `Add a post to the feed. The timestamp given with --at is stored exactly as
written and rendered relative to the viewer's clock.

Examples:
  timeago post add "hello"
  timeago post add "from the archive" --at 1700000000
  timeago post add "meeting notes" --author sam --at "2024-01-15 10:30:00"`,
	Args: cobra.ExactArgs(1),
	RunE: runPostAdd,
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	Args:  cobra.NoArgs,
	RunE:  runPostList,
}

type postResponse struct {
	ID        int64  `json:"id"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	Relative  string `json:"relative"`
	Parsed    bool   `json:"parsed"`
}

func toPostResponse(p *models.Post, parser *timestamp.Parser, now time.Time) postResponse {
	resp := postResponse{
		ID:        p.ID,
		Author:    p.Author,
		Body:      p.Body,
		CreatedAt: p.CreatedAt,
		Relative:  p.CreatedAt,
	}
	if instant, ok := parser.ParseString(p.CreatedAt); ok {
		resp.Parsed = true
		resp.Relative = common.FormatRelative(instant, now)
	}
	return resp
}

func defaultAuthor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "anonymous"
}

func runPostAdd(cmd *cobra.Command, args []string) error {
	database, err := openFeedDB()
	if err != nil {
		return err
	}
	defer database.Close()

	author := postAuthor
	if author == "" {
		author = defaultAuthor()
	}

	createdAt := postAt
	if createdAt == "" {
		createdAt = models.DefaultCreatedAt(time.Now())
	}

	p := &models.Post{Author: author, Body: args[0], CreatedAt: createdAt}
	if err := p.Validate(); err != nil {
		return werrors.Wrap(err, werrors.KindInvalidArgs, "invalid post")
	}
	if err := db.NewPostRepo(database.DB).Create(p); err != nil {
		return werrors.WrapInternal(err, "failed to add post")
	}

	resp := toPostResponse(p, newParser(), time.Now())
	if IsJSON() {
		return printJSON(resp)
	}

	OutputLine("Added post #%d by %s (%s)", p.ID, p.Author, relativeFmt(resp.Relative))
	if !resp.Parsed {
		OutputLine("%s timestamp %q cannot be parsed and will be shown as written", failFmt("Warning:"), p.CreatedAt)
	}
	return nil
}

func runPostList(cmd *cobra.Command, args []string) error {
	database, err := openFeedDB()
	if err != nil {
		return err
	}
	defer database.Close()

	repo := db.NewPostRepo(database.DB)
	posts, err := repo.List(postLimit)
	if err != nil {
		return werrors.WrapInternal(err, "failed to list posts")
	}

	parser := newParser()
	now := time.Now()
	resp := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, toPostResponse(p, parser, now))
	}

	if IsJSON() {
		return printJSON(resp)
	}

	if len(resp) == 0 {
		OutputLine("No posts yet.")
		return nil
	}

	for _, p := range resp {
		when := relativeFmt(p.Relative)
		if !p.Parsed {
			when = failFmt(p.Relative)
		}
		fmt.Printf("%s  %-12s %-16s %s\n", dimFmt(fmt.Sprintf("#%-4d", p.ID)), boldFmt(p.Author), when, summarize(p.Body, 60))
	}

	total, err := repo.Count()
	if err == nil && !IsQuiet() {
		OutputLine("%s", dimFmt(fmt.Sprintf("%s of %s posts", humanize.Comma(int64(len(resp))), humanize.Comma(int64(total)))))
	}
	return nil
}

// summarize shortens s to one line of at most n runes.
func summarize(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
