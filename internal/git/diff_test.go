package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"repolens.dev/repolens/internal/git"
	"repolens.dev/repolens/testhelpers"
)

func TestDiff(t *testing.T) {
	t.Run("unstaged changes", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("before", "file")
		})
		require.NoError(t, scene.Repo.CreateChange("after", "file", true))

		repo := openRepo(t, scene)
		diff, err := repo.Diff(context.Background(), git.DiffOptions{})
		require.NoError(t, err)

		require.Contains(t, diff, "-before")
		require.Contains(t, diff, "+after")
	})

	t.Run("staged changes only", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("before", "file")
		})
		require.NoError(t, scene.Repo.CreateChange("after", "file", false))

		repo := openRepo(t, scene)
		ctx := context.Background()

		diff, err := repo.Diff(ctx, git.DiffOptions{Staged: true})
		require.NoError(t, err)
		require.Contains(t, diff, "+after")

		// Nothing left in the unstaged view
		diff, err = repo.Diff(ctx, git.DiffOptions{})
		require.NoError(t, err)
		require.Empty(t, diff)
	})

	t.Run("restricted to paths", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "one"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("two", "two")
		})
		require.NoError(t, scene.Repo.CreateChange("one edited", "one", true))
		require.NoError(t, scene.Repo.CreateChange("two edited", "two", true))

		repo := openRepo(t, scene)
		diff, err := repo.Diff(context.Background(), git.DiffOptions{Paths: []string{"one_test.txt"}})
		require.NoError(t, err)

		require.Contains(t, diff, "one_test.txt")
		require.NotContains(t, diff, "two_test.txt")
	})

	t.Run("show commit includes the subject and patch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateChangeAndCommit("payload", "show"))
		sha, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		repo := openRepo(t, scene)
		out, err := repo.ShowCommit(context.Background(), sha)
		require.NoError(t, err)

		require.Contains(t, out, sha)
		require.Contains(t, out, "+payload")
	})
}
