package git

import (
	"context"
	"fmt"
)

// Stage adds the given paths to the index
func (r *Repo) Stage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no paths to stage")
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := r.runner.Run(ctx, args...)
	return err
}

// StageAll stages all changes including untracked files
func (r *Repo) StageAll(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "add", "-A")
	return err
}

// Unstage removes the given paths from the index, leaving the working tree
// untouched.
func (r *Repo) Unstage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no paths to unstage")
	}
	args := append([]string{"restore", "--staged", "--"}, paths...)
	_, err := r.runner.Run(ctx, args...)
	return err
}

// HasStagedChanges checks if there are staged changes
func (r *Repo) HasStagedChanges(ctx context.Context) (bool, error) {
	output, err := r.runner.Run(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return false, err
	}
	return output != "", nil
}
