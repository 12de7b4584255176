// Package errors provides sentinel errors and custom error types for the repolens application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNoRepository indicates that no git repository is available at the
	// requested location. This is an informational state, never retried.
	ErrNoRepository = errors.New("no git repository")

	// ErrRefNotFound indicates that a revision or range expression references
	// a ref that does not exist. Recoverable; the unpushed-commit resolver
	// absorbs it and moves on to the next strategy.
	ErrRefNotFound = errors.New("ref not found")

	// ErrNotOnBranch indicates that HEAD is detached
	ErrNotOnBranch = errors.New("not on a branch")
)

// RefNotFoundError represents an error when a revision or range expression
// cannot be resolved.
type RefNotFoundError struct {
	Ref string
	Err error
}

func (e *RefNotFoundError) Error() string {
	return fmt.Sprintf("ref %s does not exist", e.Ref)
}

// Is returns true if the target error is ErrRefNotFound
func (e *RefNotFoundError) Is(target error) bool {
	return target == ErrRefNotFound
}

func (e *RefNotFoundError) Unwrap() error {
	return e.Err
}

// NewRefNotFoundError creates a new RefNotFoundError
func NewRefNotFoundError(ref string, err error) *RefNotFoundError {
	return &RefNotFoundError{Ref: ref, Err: err}
}

// GitCommandError represents an error from a git command execution.
// Its stderr is the external tool's raw message and is shown to the
// user verbatim at the command boundary.
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// refNotFoundMarkers are the stderr fragments git emits when a revision or
// range expression names a ref that does not exist.
var refNotFoundMarkers = []string{
	"unknown revision",
	"bad revision",
	"ambiguous argument",
	"not a valid ref",
	"needed a single revision",
}

// IsRefNotFound reports whether err represents a missing-ref condition,
// either directly or as a git command failure whose stderr indicates a
// nonexistent revision.
func IsRefNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRefNotFound) {
		return true
	}
	var cmdErr *GitCommandError
	if errors.As(err, &cmdErr) {
		stderr := strings.ToLower(cmdErr.Stderr)
		for _, marker := range refNotFoundMarkers {
			if strings.Contains(stderr, marker) {
				return true
			}
		}
	}
	return false
}
