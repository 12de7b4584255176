package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"repolens.dev/repolens/testhelpers"
)

func TestRemotes(t *testing.T) {
	t.Run("no remotes configured", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		repo := openRepo(t, scene)
		remotes, err := repo.ListRemotes(context.Background())
		require.NoError(t, err)
		require.Empty(t, remotes)
	})

	t.Run("lists configured remotes", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		_, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		_, err = scene.Repo.CreateBareRemote("upstream")
		require.NoError(t, err)

		repo := openRepo(t, scene)
		remotes, err := repo.ListRemotes(context.Background())
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"origin", "upstream"}, remotes)
	})

	t.Run("lists remote branches after a push", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		_, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)
		require.NoError(t, scene.Repo.PushBranch("origin", "main"))
		require.NoError(t, scene.Repo.PushBranchTo("origin", "main", "develop"))

		repo := openRepo(t, scene)
		branches, err := repo.ListRemoteBranches(context.Background())
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"origin/main", "origin/develop"}, branches)
	})

	t.Run("remote with no branches yields nothing", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		_, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)

		repo := openRepo(t, scene)
		branches, err := repo.ListRemoteBranches(context.Background())
		require.NoError(t, err)
		require.Empty(t, branches)
	})
}

func TestIsCommitPushed(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	_, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "main"))

	pushedSHA, err := scene.Repo.GetCurrentSHA()
	require.NoError(t, err)

	require.NoError(t, scene.Repo.CreateChangeAndCommit("local only", "local"))
	localSHA, err := scene.Repo.GetCurrentSHA()
	require.NoError(t, err)

	repo := openRepo(t, scene)
	ctx := context.Background()

	pushed, err := repo.IsCommitPushed(ctx, pushedSHA)
	require.NoError(t, err)
	require.True(t, pushed)

	pushed, err = repo.IsCommitPushed(ctx, localSHA)
	require.NoError(t, err)
	require.False(t, pushed)
}
