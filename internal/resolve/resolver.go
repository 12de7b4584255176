// Package resolve determines which local commits have not been pushed to the
// best-known upstream of the current branch.
//
// The upstream is guessed through an ordered chain of strategies rather than
// read from configuration, trading correctness for zero-configuration
// convenience: a repository whose default branch is neither main nor master
// can resolve against the wrong branch. The chain is evaluated strictly
// sequentially and holds no state between calls.
package resolve

import (
	"context"
	"log/slog"
	"strings"

	"repolens.dev/repolens/internal/git"
)

const (
	// fallbackLimit is the number of local commits shown when no upstream
	// comparison is possible.
	fallbackLimit = 10

	// errorFallbackLimit is the smaller limit used when resolution itself
	// failed unexpectedly.
	errorFallbackLimit = 5
)

type outcome int

const (
	// outcomeFound means the strategy's query completed, even if it matched
	// zero commits.
	outcomeFound outcome = iota
	// outcomeNotApplicable means the strategy had nothing to compare against
	outcomeNotApplicable
	// outcomeError means the query itself failed; the next strategy runs
	outcomeError
)

type result struct {
	outcome outcome
	commits []git.Commit
	err     error
}

// strategy is one upstream guess. Run never panics and never surfaces its
// error to the user; failures only advance the chain.
type strategy struct {
	name string
	run  func(ctx context.Context, repo *git.Repo) result
}

// upstreamStrategies are tried in order until one yields outcomeFound
var upstreamStrategies = []strategy{
	{name: "origin/main", run: compareAgainst("origin/main")},
	{name: "origin/master", run: compareAgainst("origin/master")},
	{name: "first-origin-branch", run: firstOriginBranch},
}

// Resolve returns the commits on the current branch that have not been pushed
// to the resolved upstream, newest first. When no upstream can be resolved it
// falls back to recent local history so the caller always has something to
// show. The result is advisory only and recomputed on every call.
func Resolve(ctx context.Context, repo *git.Repo) []git.Commit {
	commits, err := resolveUpstream(ctx, repo)
	if err == nil {
		return commits
	}

	slog.Debug("unpushed resolution failed, using short local history",
		slog.Any("error", err))
	commits, err = repo.RecentCommits(ctx, errorFallbackLimit)
	if err != nil {
		return []git.Commit{}
	}
	return commits
}

func resolveUpstream(ctx context.Context, repo *git.Repo) ([]git.Commit, error) {
	remotes, err := repo.ListRemotes(ctx)
	if err != nil {
		return nil, err
	}
	if len(remotes) == 0 {
		// No remote configured: plain local history, no upstream comparison
		return repo.RecentCommits(ctx, fallbackLimit)
	}

	for _, s := range upstreamStrategies {
		res := s.run(ctx, repo)
		switch res.outcome {
		case outcomeFound:
			slog.Debug("resolved upstream", slog.String("strategy", s.name),
				slog.Int("commits", len(res.commits)))
			return res.commits, nil
		case outcomeNotApplicable:
			slog.Debug("strategy not applicable", slog.String("strategy", s.name))
		case outcomeError:
			slog.Debug("strategy failed", slog.String("strategy", s.name),
				slog.Any("error", res.err))
		}
	}

	// Every comparison failed. Discard remote semantics entirely.
	return repo.RecentCommits(ctx, fallbackLimit)
}

// compareAgainst builds a strategy that lists commits in upstream..HEAD
func compareAgainst(upstream string) func(ctx context.Context, repo *git.Repo) result {
	return func(ctx context.Context, repo *git.Repo) result {
		commits, err := repo.Log(ctx, upstream+"..HEAD", 0)
		if err != nil {
			return result{outcome: outcomeError, err: err}
		}
		return result{outcome: outcomeFound, commits: commits}
	}
}

// firstOriginBranch compares against the first remote-tracking branch whose
// name contains "origin/". Enumeration order is whatever git reports, which
// makes the pick nondeterministic across repositories with several origin
// branches and neither main nor master.
func firstOriginBranch(ctx context.Context, repo *git.Repo) result {
	branches, err := repo.ListRemoteBranches(ctx)
	if err != nil {
		return result{outcome: outcomeError, err: err}
	}
	for _, branch := range branches {
		if !strings.Contains(branch, "origin/") {
			continue
		}
		commits, err := repo.Log(ctx, branch+"..HEAD", 0)
		if err != nil {
			return result{outcome: outcomeError, err: err}
		}
		return result{outcome: outcomeFound, commits: commits}
	}
	return result{outcome: outcomeNotApplicable}
}
