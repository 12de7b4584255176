package cli

import (
	"errors"
	"fmt"
	"os"

	repolenserrors "repolens.dev/repolens/internal/errors"
	"repolens.dev/repolens/internal/git"
)

// workDir is the value of the persistent --directory flag
var workDir string

// openRepo resolves the repository for the current invocation. A missing
// repository is an informational condition, reported in plain words rather
// than with git's discovery error.
func openRepo() (*git.Repo, error) {
	dir := workDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = cwd
	}

	repo, err := git.Open(dir)
	if err != nil {
		if errors.Is(err, repolenserrors.ErrNoRepository) {
			return nil, fmt.Errorf("no git repository found at %s", dir)
		}
		return nil, err
	}
	return repo, nil
}
