package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for deadfiles
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deadfiles",
		Short: "Find source files that are never used",
		Long: `deadfiles compares the source files under a directory with a list of
files known to be used (for example from a coverage run or an autoloader
trace) and reports the files that never appear in the list.

Files matching exclusion patterns are never reported. Nothing is modified
or deleted: the output is a sorted list of candidates for review.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error
		SilenceErrors: true,
	}

	cmd.AddCommand(NewFindCommand())
	cmd.AddCommand(NewCommonPathCommand())

	return cmd
}
