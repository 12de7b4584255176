package cli

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"repolens.dev/repolens/internal/output"
	"repolens.dev/repolens/internal/rewrite"
)

// newRedateCmd creates the redate command
func newRedateCmd() *cobra.Command {
	var (
		force bool
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "redate <commit> <timestamp>",
		Short: "Rewrite a commit's author and committer timestamp",
		Long: `Rewrite the timestamp of a single commit across all branches.

This recomputes the hash of the commit and every descendant; any hash you
noted before this command no longer refers to live history. Commits already
reachable from a remote-tracking branch are refused unless --force is given,
because rewriting them diverges every other clone.

The timestamp is handed to git unvalidated; any format git accepts works,
e.g. "2024-03-01T12:00:00" or "Fri Mar 1 12:00:00 2024 +0100".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}
			rev, timestamp := args[0], args[1]
			splog := output.NewSplog()

			opts := rewrite.Options{Force: force}
			if !yes {
				opts.Confirm = func(message string) (bool, error) {
					confirmed := false
					prompt := &survey.Confirm{Message: message}
					if err := survey.AskOne(prompt, &confirmed); err != nil {
						return false, fmt.Errorf("canceled")
					}
					return confirmed, nil
				}
			}

			err = rewrite.CommitDate(cmd.Context(), repo, rev, timestamp, opts)
			if errors.Is(err, rewrite.ErrAborted) {
				splog.Info("aborted, repository unchanged")
				return nil
			}
			if err != nil {
				return err
			}

			splog.Info("rewrote %s to %s", rev, timestamp)
			splog.Warn("all descendant commit hashes changed; previously noted hashes are stale")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Rewrite even if the commit is already pushed")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
