package cli

import (
	"github.com/spf13/cobra"

	"repolens.dev/repolens/internal/output"
)

// newPushCmd creates the push command
func newPushCmd() *cobra.Command {
	var setUpstream string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push the current branch to its upstream",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if setUpstream != "" {
				branch, err := repo.CurrentBranch()
				if err != nil {
					return err
				}
				if err := repo.PushSetUpstream(ctx, setUpstream, branch); err != nil {
					return err
				}
			} else if err := repo.Push(ctx); err != nil {
				return err
			}

			output.NewSplog().Info("pushed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&setUpstream, "set-upstream", "u", "", "Push to this remote and record it as the upstream")

	return cmd
}
