package cli

import (
	"bytes"
	"io"
	"log"
	"os"
	"time"

	"github.com/diogenes-ai-code/timeago/internal/document"
	werrors "github.com/diogenes-ai-code/timeago/internal/errors"
	"github.com/diogenes-ai-code/timeago/internal/refresh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// Render command flags
var (
	renderOutput   string
	renderNow      string
	renderSelector string
)

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write the page to a file instead of stdout")
	renderCmd.Flags().StringVar(&renderNow, "now", "", "Reference time (RFC 3339 or epoch; default: current time)")
	renderCmd.Flags().StringVar(&renderSelector, "selector", "", "Selector for timestamp elements (default from config)")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <file|->",
	Short: "Render the timestamps of an HTML page once",
	Long: `Replace the text of every timestamp element in an HTML page with its
relative form and write the page out. Values that cannot be parsed are left
as they are. Every element keeps its raw value in its title attribute.

Use "-" to read the page from stdin.

Examples:
  timeago render page.html
  timeago render page.html -o out.html --now 2024-01-16T00:00:00Z
  cat page.html | timeago render - --selector "time.posted"`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func selectorFor(flag string) document.Selector {
	if flag != "" {
		return document.ParseSelector(flag)
	}
	return document.ParseSelector(GetConfig().Selector)
}

// refreshLogger logs refreshes to stderr in verbose mode only.
func refreshLogger() *log.Logger {
	if IsVerbose() && !IsQuiet() {
		return log.New(os.Stderr, "[timeago-refresh] ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

func openPage(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if os.IsNotExist(err) {
		return nil, werrors.NotFound("page %s not found", name)
	}
	if err != nil {
		return nil, werrors.WrapInternal(err, "failed to open %s", name)
	}
	return f, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	parser := newParser()
	now, err := resolveNow(parser, renderNow)
	if err != nil {
		return err
	}

	page, err := openPage(cmd, args[0])
	if err != nil {
		return err
	}
	defer page.Close()

	doc, err := document.Parse(page, selectorFor(renderSelector))
	if err != nil {
		return werrors.Wrap(err, werrors.KindInvalidArgs, "failed to parse %s", args[0])
	}

	scheduler := refresh.New(refresh.Config{
		View:   doc,
		Parser: parser,
		Logger: refreshLogger(),
	})
	result := scheduler.Tick(now)

	if renderOutput == "" {
		if IsJSON() {
			return printJSON(result)
		}
		if err := doc.Render(os.Stdout); err != nil {
			return werrors.WrapInternal(err, "failed to write page")
		}
		return nil
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return werrors.WrapInternal(err, "failed to render page")
	}
	if err := os.WriteFile(renderOutput, buf.Bytes(), 0644); err != nil {
		return werrors.WrapInternal(err, "failed to write %s", renderOutput)
	}

	if IsJSON() {
		return printJSON(result)
	}
	OutputLine("Rendered %s timestamps (%s unparseable) to %s (%s)",
		humanize.Comma(int64(result.Elements)),
		humanize.Comma(int64(result.Fallback)),
		renderOutput,
		humanize.Bytes(uint64(buf.Len())))
	VerboseOutput("Reference time: %s\n", now.Format(time.RFC3339))

	return nil
}
