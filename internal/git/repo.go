package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	repolenserrors "repolens.dev/repolens/internal/errors"
)

// Repo is an explicit repository handle. All operations in this package hang
// off a Repo so callers pass the repository context around instead of relying
// on process-wide state.
type Repo struct {
	root   string
	gogit  *gogit.Repository
	runner *CommandRunner
}

// Open locates the git repository containing path and returns a handle rooted
// at the worktree. Returns ErrNoRepository when path is not inside a repository.
func Open(path string) (*Repo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %v", repolenserrors.ErrNoRepository, absPath, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	root := worktree.Filesystem.Root()

	return &Repo{
		root:   root,
		gogit:  repo,
		runner: NewCommandRunner(root),
	}, nil
}

// Root returns the worktree root directory of the repository
func (r *Repo) Root() string {
	return r.root
}

// ResolveRevision resolves a revision expression (branch, tag, hash prefix,
// HEAD~n, ...) to a full commit hash using go-git.
func (r *Repo) ResolveRevision(rev string) (string, error) {
	hash, err := r.gogit.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", repolenserrors.NewRefNotFoundError(rev, err)
	}
	return hash.String(), nil
}

// Head returns the full hash of the current HEAD commit
func (r *Repo) Head() (string, error) {
	head, err := r.gogit.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// CurrentBranch returns the short name of the branch HEAD points at, or
// ErrNotOnBranch when HEAD is detached.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.gogit.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", repolenserrors.ErrNotOnBranch
	}
	return head.Name().Short(), nil
}
