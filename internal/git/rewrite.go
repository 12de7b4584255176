package git

import (
	"context"
)

// RewriteHistory runs git filter-branch with the given env-filter expression.
// When allBranches is set the rewrite covers every branch (--all), otherwise
// only the current one. The operation is all-or-nothing from the caller's
// perspective; on failure git leaves the original refs in place.
//
// Every rewritten commit and all of its descendants receive new hashes.
// Callers must discard any previously obtained hashes and re-query.
func (r *Repo) RewriteHistory(ctx context.Context, envFilter string, allBranches bool) error {
	args := []string{"filter-branch", "-f", "--env-filter", envFilter}
	if allBranches {
		args = append(args, "--", "--all")
	}
	_, err := r.runner.RunWithEnv(ctx, []string{"FILTER_BRANCH_SQUELCH_WARNING=1"}, args...)
	return err
}
