package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"repolens.dev/repolens/internal/git"
	"repolens.dev/repolens/internal/output"
)

// newCommitCmd creates the commit command
func newCommitCmd() *cobra.Command {
	var (
		message string
		date    string
		all     bool
		push    bool
	)

	cmd := &cobra.Command{
		Use:   "commit [files...]",
		Short: "Stage the selected files and commit them, optionally with a custom timestamp",
		Long: `Stage exactly the listed files (or everything with --all) and record a
commit. The --date value overrides both the author and committer timestamp;
it is passed to git unvalidated, so any format git accepts works.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateCommitRequest(args, all, message); err != nil {
				return err
			}

			repo, err := openRepo()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			splog := output.NewSplog()

			if all {
				if err := repo.StageAll(ctx); err != nil {
					return err
				}
			} else {
				if err := repo.Stage(ctx, args...); err != nil {
					return err
				}
			}

			staged, err := repo.HasStagedChanges(ctx)
			if err != nil {
				return err
			}
			if !staged {
				return fmt.Errorf("nothing to commit: the selected files have no changes")
			}

			if err := repo.Commit(ctx, git.CommitOptions{Message: message, Date: date}); err != nil {
				return err
			}
			splog.Info("committed: %s", message)

			if push {
				if err := repo.Push(ctx); err != nil {
					return err
				}
				splog.Info("pushed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message (required)")
	cmd.Flags().StringVar(&date, "date", "", "Override the author and committer timestamp")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Stage all changes instead of listing files")
	cmd.Flags().BoolVar(&push, "push", false, "Push the current branch after committing")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

// validateCommitRequest rejects an empty selection before any git invocation
func validateCommitRequest(files []string, all bool, message string) error {
	if message == "" {
		return fmt.Errorf("commit message is required")
	}
	if !all && len(files) == 0 {
		return fmt.Errorf("no files selected for commit: list files or pass --all")
	}
	return nil
}
