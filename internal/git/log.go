package git

import (
	"context"
	"strconv"
	"strings"
	"time"

	repolenserrors "repolens.dev/repolens/internal/errors"
)

// Commit is a single history entry as returned by git log.
// Hashes are opaque identifiers; after a history rewrite, previously
// returned hashes no longer refer to live history.
type Commit struct {
	Hash       string
	ShortHash  string
	Author     string
	AuthorDate time.Time
	Subject    string
}

// logFormat uses NUL field separators so subjects containing any printable
// character parse cleanly.
const logFormat = "%H%x00%h%x00%an%x00%at%x00%s"

// Log returns the commits selected by a range expression (e.g.
// "origin/main..HEAD" or "HEAD"), newest first. Returns a RefNotFound error
// when the expression references a nonexistent ref; limit <= 0 means no limit.
func (r *Repo) Log(ctx context.Context, rangeExpr string, limit int) ([]Commit, error) {
	args := []string{"log", "--format=" + logFormat}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	args = append(args, rangeExpr)

	output, err := r.runner.Run(ctx, args...)
	if err != nil {
		if repolenserrors.IsRefNotFound(err) {
			return nil, repolenserrors.NewRefNotFoundError(rangeExpr, err)
		}
		return nil, err
	}
	return parseCommits(output), nil
}

// RecentCommits returns the most recent limit commits reachable from HEAD
func (r *Repo) RecentCommits(ctx context.Context, limit int) ([]Commit, error) {
	return r.Log(ctx, "HEAD", limit)
}

func parseCommits(output string) []Commit {
	commits := []Commit{}
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\x00")
		if len(parts) < 5 {
			continue
		}
		unix, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			continue
		}
		commits = append(commits, Commit{
			Hash:       parts[0],
			ShortHash:  parts[1],
			Author:     parts[2],
			AuthorDate: time.Unix(unix, 0),
			Subject:    parts[4],
		})
	}
	return commits
}
