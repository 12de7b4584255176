package git

import (
	"context"
	"strings"
)

// ListRemotes returns the configured remote names, possibly empty
func (r *Repo) ListRemotes(ctx context.Context) ([]string, error) {
	return r.runner.RunLines(ctx, "remote")
}

// ListRemoteBranches returns the short names of all remote-tracking branches,
// e.g. "origin/main". HEAD pointer entries are filtered out.
func (r *Repo) ListRemoteBranches(ctx context.Context) ([]string, error) {
	lines, err := r.runner.RunLines(ctx, "branch", "-r", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	branches := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" || isSymbolicRemoteHead(line) {
			continue
		}
		branches = append(branches, line)
	}
	return branches, nil
}

func isSymbolicRemoteHead(name string) bool {
	// "origin/HEAD" or the verbose "origin/HEAD -> origin/main" form
	return strings.HasSuffix(name, "/HEAD") || strings.Contains(name, " -> ")
}

// IsCommitPushed reports whether the commit is reachable from any
// remote-tracking branch. Used as a safety check before history rewriting.
func (r *Repo) IsCommitPushed(ctx context.Context, hash string) (bool, error) {
	output, err := r.runner.Run(ctx, "branch", "-r", "--contains", hash)
	if err != nil {
		return false, err
	}
	return output != "", nil
}
