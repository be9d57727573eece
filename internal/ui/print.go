package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel  = color.New(color.FgYellow, color.Bold).SprintFunc()
	bold       = color.New(color.Bold).SprintFunc()
)

// PrintError writes err to w prefixed with a red "Error:".
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorLabel("Error:"), err)
}

// PrintWarning writes msg to w prefixed with a yellow "Warning:".
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", warnLabel("Warning:"), msg)
}

// Bold renders s in bold when color output is enabled.
func Bold(s string) string {
	return bold(s)
}
