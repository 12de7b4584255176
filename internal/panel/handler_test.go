package panel

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"repolens.dev/repolens/internal/git"
	"repolens.dev/repolens/testhelpers"
)

func newHandler(t *testing.T, scene *testhelpers.Scene) *Handler {
	t.Helper()
	repo, err := git.Open(scene.Dir)
	require.NoError(t, err)
	return NewHandler(repo)
}

func mustPayload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func decodeData[T any](t *testing.T, event Event) T {
	t.Helper()
	var data T
	require.NoError(t, json.Unmarshal(event.Data, &data))
	return data
}

func TestHandleStatus(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	require.NoError(t, scene.Repo.CreateChange("pending", "pending", true))

	handler := newHandler(t, scene)
	events := handler.Handle(context.Background(), Request{Type: RequestStatus})

	require.Len(t, events, 1)
	require.Equal(t, EventState, events[0].Type)

	state := decodeData[StateData](t, events[0])
	require.Equal(t, "main", state.Branch)
	require.Equal(t, []string{"pending_test.txt"}, state.Untracked)
	// The single local commit shows up as unpushed
	require.Len(t, state.Unpushed, 1)
	// Empty buckets marshal as arrays, not null
	require.NotNil(t, state.Staged)
	require.NotNil(t, state.Modified)
}

func TestHandleDiff(t *testing.T) {
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("before", "file")
	})
	require.NoError(t, scene.Repo.CreateChange("after", "file", true))

	handler := newHandler(t, scene)
	events := handler.Handle(context.Background(), Request{
		Type:    RequestDiff,
		Payload: mustPayload(t, DiffPayload{Path: "file_test.txt"}),
	})

	require.Len(t, events, 1)
	require.Equal(t, EventDiff, events[0].Type)

	diff := decodeData[DiffData](t, events[0])
	require.Equal(t, "file_test.txt", diff.Path)
	require.Contains(t, diff.HTML, "after")
}

func TestHandleCommit(t *testing.T) {
	t.Run("empty file selection is rejected before any git call", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateChange("pending", "pending", true))

		handler := newHandler(t, scene)
		events := handler.Handle(context.Background(), Request{
			Type:    RequestCommit,
			Payload: mustPayload(t, CommitPayload{Message: "msg", Files: []string{}}),
		})

		require.Len(t, events, 1)
		require.Equal(t, EventError, events[0].Type)
		require.Contains(t, decodeData[ErrorData](t, events[0]).Message, "no files selected")

		// No commit was created
		hashes, err := scene.Repo.ListCommitHashes()
		require.NoError(t, err)
		require.Len(t, hashes, 1)
	})

	t.Run("empty message is rejected", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		handler := newHandler(t, scene)
		events := handler.Handle(context.Background(), Request{
			Type:    RequestCommit,
			Payload: mustPayload(t, CommitPayload{Files: []string{"x.txt"}}),
		})

		require.Len(t, events, 1)
		require.Equal(t, EventError, events[0].Type)
	})

	t.Run("stages the selected files and commits with a custom date", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateChange("pending", "pending", true))

		handler := newHandler(t, scene)
		events := handler.Handle(context.Background(), Request{
			Type: RequestCommit,
			Payload: mustPayload(t, CommitPayload{
				Message: "panel commit",
				Date:    "2022-03-04 10:00:00 +0000",
				Files:   []string{"pending_test.txt"},
			}),
		})

		require.Len(t, events, 2)
		require.Equal(t, EventDone, events[0].Type)
		require.Equal(t, EventState, events[1].Type)

		subjects, err := scene.Repo.ListCommitSubjectsWithDates()
		require.NoError(t, err)
		require.Equal(t, "panel commit|2022-03-04", subjects[0])
	})
}

func TestHandleStageAndUnstage(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	require.NoError(t, scene.Repo.CreateChange("pending", "pending", true))

	handler := newHandler(t, scene)
	ctx := context.Background()

	events := handler.Handle(ctx, Request{
		Type:    RequestStage,
		Payload: mustPayload(t, PathsPayload{Paths: []string{"pending_test.txt"}}),
	})
	require.Len(t, events, 2)
	require.Equal(t, EventDone, events[0].Type)

	state := decodeData[StateData](t, events[1])
	require.Equal(t, []string{"pending_test.txt"}, state.Staged)

	events = handler.Handle(ctx, Request{
		Type:    RequestUnstage,
		Payload: mustPayload(t, PathsPayload{Paths: []string{"pending_test.txt"}}),
	})
	require.Len(t, events, 2)

	state = decodeData[StateData](t, events[1])
	require.Empty(t, state.Staged)
	require.Equal(t, []string{"pending_test.txt"}, state.Untracked)
}

func TestHandleUnknownRequest(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	handler := newHandler(t, scene)
	events := handler.Handle(context.Background(), Request{Type: "teleport"})

	require.Len(t, events, 1)
	require.Equal(t, EventError, events[0].Type)
}

func TestHandleStageMissingPaths(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	handler := newHandler(t, scene)
	events := handler.Handle(context.Background(), Request{
		Type:    RequestStage,
		Payload: mustPayload(t, PathsPayload{}),
	})

	require.Len(t, events, 1)
	require.Equal(t, EventError, events[0].Type)
}
