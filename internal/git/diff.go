package git

import (
	"context"
)

// DiffOptions selects which diff to produce
type DiffOptions struct {
	Staged bool
	Paths  []string
}

// Diff returns the raw unified patch text for the working tree (or the index
// when opts.Staged is set), optionally limited to the given paths.
func (r *Repo) Diff(ctx context.Context, opts DiffOptions) (string, error) {
	args := []string{"diff"}
	if opts.Staged {
		args = append(args, "--cached")
	}
	if len(opts.Paths) > 0 {
		args = append(args, "--")
		args = append(args, opts.Paths...)
	}
	return r.runner.RunRaw(ctx, args...)
}

// DiffRange returns the raw patch between two revisions
func (r *Repo) DiffRange(ctx context.Context, from, to string) (string, error) {
	return r.runner.RunRaw(ctx, "diff", from, to)
}

// ShowCommit returns the patch a single commit introduced
func (r *Repo) ShowCommit(ctx context.Context, hash string) (string, error) {
	return r.runner.RunRaw(ctx, "show", "--format=fuller", hash)
}
