package git

import (
	"context"
	"fmt"
	"strings"
)

// Rename records a staged rename
type Rename struct {
	From string
	To   string
}

// Status is a snapshot of the working tree as reported by
// git status --porcelain=v1 --branch. It is recomputed on every query and
// never cached.
type Status struct {
	CurrentBranch string
	TrackingRef   string // e.g. "origin/main"; empty when no upstream is set
	Ahead         int
	Behind        int
	Staged        []string
	Modified      []string
	Untracked     []string
	Deleted       []string
	Renamed       []Rename
}

// HasChanges reports whether any file bucket is non-empty
func (s *Status) HasChanges() bool {
	return len(s.Staged) > 0 || len(s.Modified) > 0 || len(s.Untracked) > 0 ||
		len(s.Deleted) > 0 || len(s.Renamed) > 0
}

// Status queries the current working tree state
func (r *Repo) Status(ctx context.Context) (*Status, error) {
	output, err := r.runner.RunRaw(ctx, "status", "--porcelain=v1", "--branch")
	if err != nil {
		return nil, err
	}
	return parseStatus(output)
}

// parseStatus parses git status --porcelain=v1 --branch output.
// The first line is the branch header "## branch...upstream [ahead N, behind M]",
// every following line is "XY PATH" where X is the index status and Y the
// working tree status.
func parseStatus(output string) (*Status, error) {
	status := &Status{}

	for line := range strings.Lines(output) {
		line = strings.TrimRight(line, "\n")
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "## ") {
			parseBranchHeader(status, strings.TrimPrefix(line, "## "))
			continue
		}
		if len(line) < 4 {
			continue
		}

		index := line[0]
		worktree := line[1]
		path := line[3:]

		switch {
		case index == '?' && worktree == '?':
			status.Untracked = append(status.Untracked, path)
			continue
		case index == 'R':
			from, to, ok := strings.Cut(path, " -> ")
			if !ok {
				return nil, fmt.Errorf("malformed rename entry: %q", line)
			}
			status.Renamed = append(status.Renamed, Rename{From: from, To: to})
			continue
		}

		if index == 'M' || index == 'A' || index == 'C' {
			status.Staged = append(status.Staged, path)
		}
		if index == 'D' {
			status.Deleted = append(status.Deleted, path)
		}
		switch worktree {
		case 'M':
			status.Modified = append(status.Modified, path)
		case 'D':
			status.Deleted = append(status.Deleted, path)
		}
	}

	return status, nil
}

// parseBranchHeader parses the "## " header line, e.g.
//
//	main...origin/main [ahead 2, behind 1]
//	main
//	No commits yet on main
func parseBranchHeader(status *Status, header string) {
	if rest, ok := strings.CutPrefix(header, "No commits yet on "); ok {
		status.CurrentBranch = rest
		return
	}

	branchPart := header
	if idx := strings.Index(header, " ["); idx >= 0 {
		branchPart = header[:idx]
		counts := strings.Trim(header[idx+1:], "[]")
		for _, part := range strings.Split(counts, ", ") {
			if n, ok := strings.CutPrefix(part, "ahead "); ok {
				fmt.Sscanf(n, "%d", &status.Ahead)
			}
			if n, ok := strings.CutPrefix(part, "behind "); ok {
				fmt.Sscanf(n, "%d", &status.Behind)
			}
		}
	}

	if branch, upstream, ok := strings.Cut(branchPart, "..."); ok {
		status.CurrentBranch = branch
		status.TrackingRef = upstream
	} else {
		status.CurrentBranch = branchPart
	}
}
