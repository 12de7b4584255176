package cli

import (
	"github.com/spf13/cobra"

	"repolens.dev/repolens/internal/git"
	"repolens.dev/repolens/internal/output"
)

// newDiffCmd creates the diff command
func newDiffCmd() *cobra.Command {
	var (
		staged  bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "diff [paths...]",
		Short: "Show the working tree diff, syntax highlighted",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}

			patch, err := repo.Diff(cmd.Context(), git.DiffOptions{
				Staged: staged,
				Paths:  args,
			})
			if err != nil {
				return err
			}

			if !noColor {
				patch = output.HighlightDiff(patch)
			}
			output.NewSplog().Page(patch)
			return nil
		},
	}

	cmd.Flags().BoolVar(&staged, "staged", false, "Show the staged (index) diff instead of the working tree diff")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable syntax highlighting")

	return cmd
}
