package git_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	repolenserrors "repolens.dev/repolens/internal/errors"
	"repolens.dev/repolens/internal/git"
	"repolens.dev/repolens/testhelpers"
)

func TestOpen(t *testing.T) {
	t.Run("missing repository is a sentinel error", func(t *testing.T) {
		_, err := git.Open(t.TempDir())
		require.Error(t, err)
		require.True(t, errors.Is(err, repolenserrors.ErrNoRepository))
	})

	t.Run("discovers the repository from a subdirectory", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		sub := filepath.Join(scene.Dir, "a", "b")
		require.NoError(t, os.MkdirAll(sub, 0755))

		repo, err := git.Open(sub)
		require.NoError(t, err)
		require.Equal(t, evalSymlinks(t, scene.Dir), evalSymlinks(t, repo.Root()))
	})
}

// evalSymlinks normalizes paths so the comparison survives /tmp being a
// symlink, as it is on macOS.
func evalSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

func TestResolveRevision(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	repo := openRepo(t, scene)

	sha, err := repo.ResolveRevision("HEAD")
	require.NoError(t, err)
	require.Len(t, sha, 40)

	_, err = repo.ResolveRevision("does-not-exist")
	require.Error(t, err)
	require.True(t, errors.Is(err, repolenserrors.ErrRefNotFound))
}

func TestCurrentBranch(t *testing.T) {
	t.Run("on a branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		repo := openRepo(t, scene)

		branch, err := repo.CurrentBranch()
		require.NoError(t, err)
		require.Equal(t, "main", branch)
	})

	t.Run("detached head", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		sha, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		require.NoError(t, scene.Repo.RunGitCommand("checkout", "--detach", sha))

		repo := openRepo(t, scene)
		_, err = repo.CurrentBranch()
		require.Error(t, err)
		require.True(t, errors.Is(err, repolenserrors.ErrNotOnBranch))
	})
}
