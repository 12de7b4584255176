package cli

import (
	"github.com/spf13/cobra"

	"repolens.dev/repolens/internal/output"
	"repolens.dev/repolens/internal/resolve"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show the repository state as a tree: branch, changed files, unpushed commits",
		Aliases: []string{"st"},
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			status, err := repo.Status(ctx)
			if err != nil {
				return err
			}
			unpushed := resolve.Resolve(ctx, repo)

			renderer := output.NewStatusTreeRenderer(status, unpushed)
			if noColor {
				renderer.SetColor(false)
			}
			output.NewSplog().Page(renderer.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
