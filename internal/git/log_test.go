package git_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	repolenserrors "repolens.dev/repolens/internal/errors"
	"repolens.dev/repolens/testhelpers"
)

func TestLog(t *testing.T) {
	t.Run("returns commits newest first", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			for _, subject := range []string{"first", "second", "third"} {
				if err := s.Repo.CreateChangeAndCommit(subject, subject); err != nil {
					return err
				}
			}
			return nil
		})

		repo := openRepo(t, scene)
		commits, err := repo.Log(context.Background(), "HEAD", 0)
		require.NoError(t, err)

		require.Len(t, commits, 3)
		require.Equal(t, "third", commits[0].Subject)
		require.Equal(t, "second", commits[1].Subject)
		require.Equal(t, "first", commits[2].Subject)
		for _, c := range commits {
			require.Len(t, c.Hash, 40)
			require.NotEmpty(t, c.ShortHash)
			require.Equal(t, "Test User", c.Author)
			require.False(t, c.AuthorDate.IsZero())
		}
	})

	t.Run("honors the limit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			for _, subject := range []string{"a", "b", "c", "d"} {
				if err := s.Repo.CreateChangeAndCommit(subject, subject); err != nil {
					return err
				}
			}
			return nil
		})

		repo := openRepo(t, scene)
		commits, err := repo.RecentCommits(context.Background(), 2)
		require.NoError(t, err)

		require.Len(t, commits, 2)
		require.Equal(t, "d", commits[0].Subject)
	})

	t.Run("range expression selects only unmerged commits", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		_, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, scene.Repo.PushBranch("origin", "main"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("local only", "local"))

		repo := openRepo(t, scene)
		commits, err := repo.Log(context.Background(), "origin/main..HEAD", 0)
		require.NoError(t, err)

		require.Len(t, commits, 1)
		require.Equal(t, "local only", commits[0].Subject)
	})

	t.Run("unknown ref is a recoverable error", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		repo := openRepo(t, scene)
		_, err := repo.Log(context.Background(), "origin/nope..HEAD", 0)
		require.Error(t, err)
		require.True(t, repolenserrors.IsRefNotFound(err))

		var refErr *repolenserrors.RefNotFoundError
		require.True(t, errors.As(err, &refErr))
		require.Equal(t, "origin/nope..HEAD", refErr.Ref)
	})
}
