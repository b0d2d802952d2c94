package cli

import (
	"strings"

	werrors "github.com/diogenes-ai-code/timeago/internal/errors"
)

// ExitCode returns the exit code for any error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return werrors.GetCLIExitCode(err)
}

// FormatErrorMessage returns formatted error with suggestion if available.
func FormatErrorMessage(err error) string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(err.Error())
	if e, ok := werrors.As(err); ok && e.Suggestion != "" {
		b.WriteString("\n\nSuggestion: ")
		b.WriteString(e.Suggestion)
	}
	return b.String()
}

// Common suggestions
const (
	SuggestRunInit        = "Run 'timeago init' to create the feed database."
	SuggestTimestampForms = "Use epoch seconds or milliseconds, \"YYYY-MM-DD HH:MM:SS\", or an ISO 8601 date."
	SuggestForce          = "Pass --force to overwrite it."
)
