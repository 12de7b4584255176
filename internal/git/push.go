package git

import (
	"context"
)

// Push pushes the current branch to its upstream. When no upstream is
// configured the push fails with git's own message, surfaced verbatim.
func (r *Repo) Push(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "push")
	return err
}

// PushSetUpstream pushes a branch and records remote as its upstream
func (r *Repo) PushSetUpstream(ctx context.Context, remote, branch string) error {
	_, err := r.runner.Run(ctx, "push", "-u", remote, branch)
	return err
}
