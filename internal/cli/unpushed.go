package cli

import (
	"github.com/spf13/cobra"

	"repolens.dev/repolens/internal/output"
	"repolens.dev/repolens/internal/resolve"
)

// newUnpushedCmd creates the unpushed command
func newUnpushedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpushed",
		Short: "List commits on the current branch that have not been pushed upstream",
		Long: `List commits reachable from HEAD but not from the best-guess upstream.
The upstream is resolved by trying origin/main, then origin/master, then the
first origin branch; with no usable remote the most recent local commits are
shown instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}

			splog := output.NewSplog()
			commits := resolve.Resolve(cmd.Context(), repo)
			if len(commits) == 0 {
				splog.Info("no unpushed commits")
				return nil
			}
			for _, commit := range commits {
				splog.Info("%s  %s  %s (%s)",
					commit.ShortHash,
					commit.AuthorDate.Format("2006-01-02 15:04"),
					commit.Subject,
					commit.Author)
			}
			return nil
		},
	}
}
