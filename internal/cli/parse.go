package cli

import (
	"fmt"
	"time"

	"github.com/diogenes-ai-code/timeago/internal/common"
	werrors "github.com/diogenes-ai-code/timeago/internal/errors"
	"github.com/diogenes-ai-code/timeago/internal/timestamp"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var parseNow string

func init() {
	parseCmd.Flags().StringVar(&parseNow, "now", "", "Reference time (RFC 3339 or epoch; default: current time)")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <raw>...",
	Short: "Show how raw timestamps are read",
	Long: `Parse each raw timestamp and show the instant it denotes and its relative form.

Numbers of at least 1e12 are epoch milliseconds, smaller numbers epoch seconds.
"YYYY-MM-DD HH:MM:SS" and ISO dates without a zone are read as UTC unless
--local-time is set.

Exits with code 2 if any value cannot be parsed.

Examples:
  timeago parse 1700000000
  timeago parse "2024-01-15 10:30:00" 2024-01-15T10:30:00+05:30
  timeago parse --now 2024-01-16T00:00:00Z 1705276800000`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

type parseResult struct {
	Raw      string `json:"raw"`
	Kind     string `json:"kind"`
	Parsed   bool   `json:"parsed"`
	Instant  string `json:"instant,omitempty"`
	Relative string `json:"relative"`
}

// resolveNow reads a --now value. Empty means the current time.
func resolveNow(parser *timestamp.Parser, value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	t, ok := parser.ParseString(value)
	if !ok {
		return time.Time{}, werrors.Wrap(werrors.Unparseable(value), werrors.KindInvalidArgs, "invalid --now value").
			WithSuggestion(SuggestTimestampForms)
	}
	return t, nil
}

func parseOne(parser *timestamp.Parser, arg string, now time.Time) parseResult {
	raw := timestamp.Classify(arg)
	result := parseResult{
		Raw:      raw.String(),
		Kind:     raw.Kind().String(),
		Relative: raw.String(),
	}
	if instant, ok := parser.Parse(raw); ok {
		result.Parsed = true
		result.Instant = instant.Format(time.RFC3339Nano)
		result.Relative = common.FormatRelative(instant, now)
	}
	return result
}

func runParse(cmd *cobra.Command, args []string) error {
	parser := newParser()
	now, err := resolveNow(parser, parseNow)
	if err != nil {
		return err
	}

	results := make([]parseResult, 0, len(args))
	var failed []string
	for _, arg := range args {
		r := parseOne(parser, arg, now)
		if !r.Parsed {
			failed = append(failed, r.Raw)
		}
		results = append(results, r)
	}

	if IsJSON() {
		if err := printJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Parsed {
				fmt.Printf("%-28s %-30s %s\n", r.Raw, dimFmt(r.Instant), relativeFmt(r.Relative))
			} else {
				fmt.Printf("%-28s %s\n", r.Raw, failFmt("unparseable"))
			}
		}
		VerboseOutput("Reference time: %s\n", now.Format(time.RFC3339))
	}

	if len(failed) > 0 {
		return werrors.Wrap(werrors.Unparseable(failed...), werrors.KindInvalidArgs,
			"%s of %s timestamps could not be parsed",
			humanize.Comma(int64(len(failed))), humanize.Comma(int64(len(args)))).
			WithSuggestion(SuggestTimestampForms)
	}
	return nil
}
