package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"repolens.dev/repolens/testhelpers"
)

func TestStaging(t *testing.T) {
	t.Run("stage and unstage by path", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateChange("one", "one", true))
		require.NoError(t, scene.Repo.CreateChange("two", "two", true))

		repo := openRepo(t, scene)
		ctx := context.Background()

		require.NoError(t, repo.Stage(ctx, "one_test.txt"))

		status, err := repo.Status(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"one_test.txt"}, status.Staged)
		require.Equal(t, []string{"two_test.txt"}, status.Untracked)

		require.NoError(t, repo.Unstage(ctx, "one_test.txt"))

		status, err = repo.Status(ctx)
		require.NoError(t, err)
		require.Empty(t, status.Staged)
	})

	t.Run("stage all picks up every change", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			return s.Repo.CreateChangeAndCommit("tracked", "tracked")
		})
		require.NoError(t, scene.Repo.CreateChange("tracked v2", "tracked", true))
		require.NoError(t, scene.Repo.CreateChange("fresh", "fresh", true))

		repo := openRepo(t, scene)
		ctx := context.Background()

		require.NoError(t, repo.StageAll(ctx))

		staged, err := repo.HasStagedChanges(ctx)
		require.NoError(t, err)
		require.True(t, staged)

		status, err := repo.Status(ctx)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"tracked_test.txt", "fresh_test.txt"}, status.Staged)
		require.Empty(t, status.Untracked)
	})

	t.Run("no staged changes in a clean repository", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		repo := openRepo(t, scene)
		staged, err := repo.HasStagedChanges(context.Background())
		require.NoError(t, err)
		require.False(t, staged)
	})
}
