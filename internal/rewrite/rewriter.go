// Package rewrite changes the recorded timestamp of a single commit by
// rewriting history across all branches.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"repolens.dev/repolens/internal/git"
)

// Sentinel errors returned before any history is touched
var (
	// ErrAlreadyPushed indicates the target commit is reachable from a
	// remote-tracking branch; rewriting it would diverge other clones.
	ErrAlreadyPushed = errors.New("commit already pushed")

	// ErrAborted indicates the user declined the confirmation prompt
	ErrAborted = errors.New("rewrite aborted")
)

// ConfirmFunc asks the user to approve the rewrite. Returning false aborts
// without touching the repository.
type ConfirmFunc func(message string) (bool, error)

// Options control the safety rails around the rewrite
type Options struct {
	// Force skips the already-pushed check
	Force bool
	// Confirm, when non-nil, is invoked before the rewrite runs
	Confirm ConfirmFunc
}

// CommitDate rewrites the author and committer timestamp of the commit
// identified by rev to newTimestamp, across all branches.
//
// The timestamp is deliberately not validated here; a malformed value is
// rejected by git and its message surfaced verbatim. The rewrite recomputes
// the hash of the target commit and every descendant, so the caller must
// discard all previously obtained hashes and re-query the repository.
func CommitDate(ctx context.Context, repo *git.Repo, rev, newTimestamp string, opts Options) error {
	hash, err := repo.ResolveRevision(rev)
	if err != nil {
		return err
	}

	if !opts.Force {
		pushed, err := repo.IsCommitPushed(ctx, hash)
		if err != nil {
			return err
		}
		if pushed {
			return fmt.Errorf("%w: %s is reachable from a remote-tracking branch; rewriting it will diverge other clones (use --force to proceed)", ErrAlreadyPushed, hash[:7])
		}
	}

	if opts.Confirm != nil {
		msg := fmt.Sprintf("Rewrite %s to %s? This changes the hash of the commit and every descendant and cannot be undone.", hash[:7], newTimestamp)
		ok, err := opts.Confirm(msg)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	slog.Debug("rewriting commit timestamp",
		slog.String("hash", hash), slog.String("timestamp", newTimestamp))

	filter := envFilter(hash, newTimestamp)
	return repo.RewriteHistory(ctx, filter, true)
}

// envFilter builds the filter-branch expression that overrides both date
// environment variables when the commit being rewritten matches hash exactly.
func envFilter(hash, timestamp string) string {
	return fmt.Sprintf(
		`if [ "$GIT_COMMIT" = "%s" ]; then export GIT_AUTHOR_DATE="%s"; export GIT_COMMITTER_DATE="%s"; fi`,
		hash, timestamp, timestamp,
	)
}
