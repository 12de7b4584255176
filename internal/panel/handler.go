package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"repolens.dev/repolens/internal/git"
	"repolens.dev/repolens/internal/output"
	"repolens.dev/repolens/internal/resolve"
)

// Handler executes panel requests against the repository. Requests run
// strictly sequentially per connection; nothing here issues concurrent git
// calls against the same repository.
type Handler struct {
	repo *git.Repo
}

// NewHandler creates a request handler bound to a repository
func NewHandler(repo *git.Repo) *Handler {
	return &Handler{repo: repo}
}

// Handle executes one request and returns the events to send back. Tool
// failures become EventError with git's message verbatim; the handler never
// returns a Go error to the transport layer.
func (h *Handler) Handle(ctx context.Context, req Request) []Event {
	switch req.Type {
	case RequestStatus:
		return []Event{h.stateEvent(ctx)}
	case RequestDiff:
		return h.handleDiff(ctx, req.Payload)
	case RequestStage:
		return h.handlePaths(ctx, req.Payload, "stage", h.repo.Stage)
	case RequestUnstage:
		return h.handlePaths(ctx, req.Payload, "unstage", h.repo.Unstage)
	case RequestCommit:
		return h.handleCommit(ctx, req.Payload)
	case RequestPush:
		return h.handlePush(ctx)
	default:
		return []Event{errorEvent(fmt.Sprintf("unknown request type %q", req.Type))}
	}
}

// StateEvent builds a fresh snapshot event, also used for refresh broadcasts
func (h *Handler) StateEvent(ctx context.Context) Event {
	return h.stateEvent(ctx)
}

func (h *Handler) stateEvent(ctx context.Context) Event {
	status, err := h.repo.Status(ctx)
	if err != nil {
		return errorEvent(err.Error())
	}
	unpushed := resolve.Resolve(ctx, h.repo)

	event, err := NewEvent(EventState, stateData(status, unpushed))
	if err != nil {
		return errorEvent(err.Error())
	}
	return event
}

func (h *Handler) handleDiff(ctx context.Context, payload json.RawMessage) []Event {
	var diffReq DiffPayload
	if err := unmarshalPayload(payload, &diffReq); err != nil {
		return []Event{errorEvent(err.Error())}
	}

	opts := git.DiffOptions{Staged: diffReq.Staged}
	if diffReq.Path != "" {
		opts.Paths = []string{diffReq.Path}
	}
	patch, err := h.repo.Diff(ctx, opts)
	if err != nil {
		return []Event{errorEvent(err.Error())}
	}

	rendered, err := output.HighlightDiffHTML(patch)
	if err != nil {
		slog.Debug("diff highlighting failed", slog.Any("error", err))
		rendered = "<pre>" + patch + "</pre>"
	}

	event, err := NewEvent(EventDiff, DiffData{Path: diffReq.Path, Staged: diffReq.Staged, HTML: rendered})
	if err != nil {
		return []Event{errorEvent(err.Error())}
	}
	return []Event{event}
}

func (h *Handler) handlePaths(ctx context.Context, payload json.RawMessage, action string, op func(context.Context, ...string) error) []Event {
	var pathsReq PathsPayload
	if err := unmarshalPayload(payload, &pathsReq); err != nil {
		return []Event{errorEvent(err.Error())}
	}
	if len(pathsReq.Paths) == 0 {
		return []Event{errorEvent("no paths selected to " + action)}
	}
	if err := op(ctx, pathsReq.Paths...); err != nil {
		return []Event{errorEvent(err.Error())}
	}
	return h.doneAndState(ctx, action)
}

func (h *Handler) handleCommit(ctx context.Context, payload json.RawMessage) []Event {
	var commitReq CommitPayload
	if err := unmarshalPayload(payload, &commitReq); err != nil {
		return []Event{errorEvent(err.Error())}
	}

	// Validated before any git invocation
	if len(commitReq.Files) == 0 {
		return []Event{errorEvent("no files selected for commit")}
	}
	if commitReq.Message == "" {
		return []Event{errorEvent("commit message is empty")}
	}

	if err := h.repo.Stage(ctx, commitReq.Files...); err != nil {
		return []Event{errorEvent(err.Error())}
	}
	err := h.repo.Commit(ctx, git.CommitOptions{
		Message: commitReq.Message,
		Date:    commitReq.Date,
	})
	if err != nil {
		return []Event{errorEvent(err.Error())}
	}

	if commitReq.Push {
		if err := h.repo.Push(ctx); err != nil {
			// The commit itself succeeded; report the push failure alongside
			// the fresh state.
			return append([]Event{errorEvent(err.Error())}, h.stateEvent(ctx))
		}
	}
	return h.doneAndState(ctx, "commit")
}

func (h *Handler) handlePush(ctx context.Context) []Event {
	if err := h.repo.Push(ctx); err != nil {
		return []Event{errorEvent(err.Error())}
	}
	return h.doneAndState(ctx, "push")
}

func (h *Handler) doneAndState(ctx context.Context, action string) []Event {
	done, err := NewEvent(EventDone, DoneData{Action: action})
	if err != nil {
		return []Event{errorEvent(err.Error())}
	}
	return []Event{done, h.stateEvent(ctx)}
}

func unmarshalPayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return fmt.Errorf("missing request payload")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("malformed request payload: %w", err)
	}
	return nil
}
