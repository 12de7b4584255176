// Package cli wires the repolens commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"repolens.dev/repolens/internal/output"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repolens",
		Short: "Repolens shows your repository state, diffs, and unpushed commits",
		Long: `Repolens is a repository companion: a tree view of branches and changed
files, highlighted diffs, a commit composer with optional timestamp override,
and a local web panel with live refresh. Every operation delegates to git.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			splog, err := output.NewSplogWithFile(output.DefaultLogFilePath())
			if err != nil {
				// File logging is best-effort; fall back to console only
				splog = output.NewSplog()
			}
			slog.SetDefault(splog.Logger())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&workDir, "directory", "C", "", "Run as if started in this directory")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newUnpushedCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newRedateCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}
