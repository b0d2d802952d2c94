package cli

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	relativeFmt = color.New(color.FgGreen).SprintFunc()
	failFmt     = color.New(color.FgRed).SprintFunc()
	dimFmt      = color.New(color.Faint).SprintFunc()
	boldFmt     = color.New(color.Bold).SprintFunc()
)

// configureColor disables color when asked to or when stdout is not a terminal.
func configureColor() {
	color.NoColor = IsNoColor() || !term.IsTerminal(int(os.Stdout.Fd()))
}
