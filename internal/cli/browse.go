package cli

import (
	"github.com/spf13/cobra"

	"repolens.dev/repolens/internal/tui"
)

// newBrowseCmd creates the browse command
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the repository state interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}
			return tui.Run(repo)
		},
	}
}
