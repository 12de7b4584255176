package git

import (
	"context"
)

// CommitOptions contains options for creating a commit
type CommitOptions struct {
	Message string
	// Date overrides both the author and committer timestamp. The string is
	// handed to git unvalidated; a malformed value is rejected by git itself
	// and the error surfaced verbatim.
	Date       string
	Amend      bool
	AllowEmpty bool
}

// Commit records the staged changes as a new commit
func (r *Repo) Commit(ctx context.Context, opts CommitOptions) error {
	args := []string{"commit", "-m", opts.Message}
	if opts.Amend {
		args = append(args, "--amend")
	}
	if opts.AllowEmpty {
		args = append(args, "--allow-empty")
	}

	if opts.Date != "" {
		args = append(args, "--date", opts.Date)
		// --date only covers the author date; the committer date comes from
		// the environment.
		_, err := r.runner.RunWithEnv(ctx, []string{"GIT_COMMITTER_DATE=" + opts.Date}, args...)
		return err
	}

	_, err := r.runner.Run(ctx, args...)
	return err
}
