// Package testhelpers builds real git repositories in temporary directories
// for integration-style tests.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const textFileName = "test.txt"

// GitRepo represents a Git repository for testing purposes
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	// Initialize with a fixed default branch and without reading global config
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	// Configure Git user (required for commits)
	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}

	return repo, nil
}

// RunGitCommand executes a git command in the repository directory.
// Uses GIT_CONFIG_GLOBAL=/dev/null to avoid reading global config.
func (r *GitRepo) RunGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %v failed: %w, output: %s", args, err, string(output))
	}
	return nil
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %v failed: %w", args, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChange creates a file change in the repository. With unstaged false
// the change is added to the index.
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	filePath := filepath.Join(r.Dir, fileName)

	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filePath, []byte(textValue), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if !unstaged {
		return r.RunGitCommand("add", filePath)
	}
	return nil
}

// CreateChangeAndCommit creates a file change and commits it
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	if err := r.RunGitCommand("add", "."); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", textValue)
}

// DeleteFile removes a tracked file from the working tree
func (r *GitRepo) DeleteFile(prefix string) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	return os.Remove(filepath.Join(r.Dir, fileName))
}

// CreateBranch creates a branch without checking it out
func (r *GitRepo) CreateBranch(name string) error {
	return r.RunGitCommand("branch", name)
}

// CreateAndCheckoutBranch creates a branch and checks it out
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.RunGitCommand("checkout", "-b", name)
}

// CheckoutBranch checks out an existing branch
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.RunGitCommand("checkout", name)
}

// CurrentBranchName returns the name of the current branch
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.RunGitCommandAndGetOutput("branch", "--show-current")
}

// CreateBareRemote creates a bare sibling repository and adds it as a remote
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	bareDir := r.Dir + "-" + name + ".git"

	cmd := exec.Command("git", "init", "--bare", bareDir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w", err)
	}

	if err := r.RunGitCommand("remote", "add", name, bareDir); err != nil {
		return "", fmt.Errorf("failed to add remote: %w", err)
	}
	return bareDir, nil
}

// PushBranch pushes a branch to a remote and sets it as upstream
func (r *GitRepo) PushBranch(remote, branch string) error {
	return r.RunGitCommand("push", "-u", remote, branch)
}

// PushBranchTo pushes a local branch under a different name on the remote,
// e.g. main -> master, and fetches so the remote-tracking ref exists.
func (r *GitRepo) PushBranchTo(remote, localBranch, remoteBranch string) error {
	if err := r.RunGitCommand("push", remote, localBranch+":refs/heads/"+remoteBranch); err != nil {
		return err
	}
	return r.Fetch(remote)
}

// Fetch updates remote-tracking refs from a remote
func (r *GitRepo) Fetch(remote string) error {
	return r.RunGitCommand("fetch", remote)
}

// GetRevision returns the SHA of a revision (branch, tag, or commit reference)
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", rev)
}

// GetCurrentSHA returns the SHA of HEAD
func (r *GitRepo) GetCurrentSHA() (string, error) {
	return r.GetRevision("HEAD")
}

// ListCommitHashes returns all commit hashes reachable from HEAD, newest first
func (r *GitRepo) ListCommitHashes() ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("log", "--format=%H")
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// ListCommitSubjectsWithDates returns "subject|iso-date" lines for all commits
// reachable from HEAD, newest first.
func (r *GitRepo) ListCommitSubjectsWithDates() ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("log", "--format=%s|%ad", "--date=short")
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// IsAncestor reports whether ancestor is reachable from descendant
func (r *GitRepo) IsAncestor(ancestor, descendant string) (bool, error) {
	cmd := exec.Command("git", "merge-base", "--is-ancestor", ancestor, descendant)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*exec.ExitError); ok {
		return false, nil
	}
	return false, err
}
