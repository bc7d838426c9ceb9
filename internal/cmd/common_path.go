package cmd

import (
	"fmt"

	"github.com/harrison/deadfiles/internal/commonpath"
	"github.com/spf13/cobra"
)

// NewCommonPathCommand creates and returns the common-path subcommand
func NewCommonPathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "common-path [path]...",
		Short: "Print the deepest directory shared by a set of files",
		Long: `Print the directory find would inspect when --root is not given: the
longest common directory prefix of the used files.

Paths come from the arguments, from --used-files, or both.

Examples:
  deadfiles common-path src/A.php src/sub/B.php
  deadfiles common-path --used-files coverage.txt`,
		RunE: runCommonPath,
	}

	cmd.Flags().StringP("used-files", "u", "", `Used-files list ("-" for stdin)`)
	cmd.Flags().String("used-files-format", "", "Used-files list format: text, json, yaml, markdown (default: by extension)")

	return cmd
}

func runCommonPath(cmd *cobra.Command, args []string) error {
	listPath, _ := cmd.Flags().GetString("used-files")
	formatName, _ := cmd.Flags().GetString("used-files-format")

	paths := append([]string{}, args...)
	if listPath != "" {
		used, err := loadUsedFiles(cmd.InOrStdin(), listPath, formatName, false)
		if err != nil {
			return err
		}
		paths = append(paths, used...)
	}

	if len(paths) == 0 {
		return fmt.Errorf("no paths given: pass files as arguments or use --used-files")
	}

	common := commonpath.DetermineCommonPath(paths)
	if common == "" {
		return fmt.Errorf("paths share no common directory")
	}

	fmt.Fprintln(cmd.OutOrStdout(), common)
	return nil
}
